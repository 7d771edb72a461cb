package skill

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCategory  = errors.New("invalid skill category")
	ErrInvalidSkillType = errors.New("invalid skill type")
)

type Category string

const (
	CategoryTechnology Category = "technology"
	CategoryDesign     Category = "design"
	CategoryBusiness   Category = "business"
	CategoryLanguage   Category = "language"
	CategoryMusic      Category = "music"
	CategorySports     Category = "sports"
	CategoryCooking    Category = "cooking"
	CategoryCrafts     Category = "crafts"
	CategoryAcademic   Category = "academic"
	CategoryOther      Category = "other"
)

// Categories lists the closed category enumeration in display order.
func Categories() []Category {
	return []Category{
		CategoryTechnology,
		CategoryDesign,
		CategoryBusiness,
		CategoryLanguage,
		CategoryMusic,
		CategorySports,
		CategoryCooking,
		CategoryCrafts,
		CategoryAcademic,
		CategoryOther,
	}
}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories() {
		if c == known {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

type Type string

const (
	TypeOffered Type = "offered"
	TypeWanted  Type = "wanted"
)

func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case TypeOffered:
		return TypeOffered, nil
	case TypeWanted:
		return TypeWanted, nil
	default:
		return "", ErrInvalidSkillType
	}
}

type Skill struct {
	ID          uuid.UUID
	Name        string
	Category    Category
	Description *string
	CreatedAt   time.Time
}

type UserSkill struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	SkillID          uuid.UUID
	SkillName        string
	SkillCategory    Category
	Type             Type
	ProficiencyLevel *int16
	CreatedAt        time.Time
}

// Ref is the minimal skill reference shown on a profile card.
type Ref struct {
	ID       uuid.UUID
	Name     string
	Category Category
}

// TopSkills holds at most one offered and one wanted skill for a user.
type TopSkills struct {
	Offered *Ref
	Wanted  *Ref
}

func ValidProficiency(v int16) bool {
	return v >= 1 && v <= 5
}
