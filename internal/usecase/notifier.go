package usecase

import "context"

// ChangeNotifier is told when data shown in the directory has changed.
type ChangeNotifier interface {
	DirectoryChanged(ctx context.Context)
}

// Notifiers fans a change out to several notifiers in order.
type Notifiers []ChangeNotifier

func (n Notifiers) DirectoryChanged(ctx context.Context) {
	for _, it := range n {
		if it != nil {
			it.DirectoryChanged(ctx)
		}
	}
}

// NotifierFunc adapts a function to ChangeNotifier.
type NotifierFunc func(ctx context.Context)

func (f NotifierFunc) DirectoryChanged(ctx context.Context) { f(ctx) }

type noopNotifier struct{}

func (noopNotifier) DirectoryChanged(context.Context) {}

func notifierOrNoop(n ChangeNotifier) ChangeNotifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}
