package seeder

import (
	"context"
	"fmt"

	"skillswap/internal/database"
	"skillswap/internal/domain/skill"
)

type catalogEntry struct {
	Name        string
	Category    skill.Category
	Description string
}

// catalog has at least one entry for every category so the category filter
// never starts out empty.
var catalog = []catalogEntry{
	{"Go", skill.CategoryTechnology, "Backend services and tooling in Go"},
	{"JavaScript", skill.CategoryTechnology, "Web development with JavaScript"},
	{"Python", skill.CategoryTechnology, "Scripting, automation and data work"},
	{"PostgreSQL", skill.CategoryTechnology, "Relational modelling and SQL"},
	{"UI Design", skill.CategoryDesign, "Interface layout, typography and colour"},
	{"Illustration", skill.CategoryDesign, "Digital and hand drawn illustration"},
	{"Photography", skill.CategoryDesign, "Composition, lighting and editing"},
	{"Public Speaking", skill.CategoryBusiness, "Presenting with confidence"},
	{"Bookkeeping", skill.CategoryBusiness, "Small business accounting basics"},
	{"Marketing", skill.CategoryBusiness, "Campaigns, positioning and copy"},
	{"Spanish", skill.CategoryLanguage, "Conversational Spanish"},
	{"English", skill.CategoryLanguage, "Conversation and writing practice"},
	{"Japanese", skill.CategoryLanguage, "Kana, kanji and everyday phrases"},
	{"Guitar", skill.CategoryMusic, "Chords, strumming and fingerstyle"},
	{"Piano", skill.CategoryMusic, "Reading music and technique"},
	{"Singing", skill.CategoryMusic, "Breath control and pitch"},
	{"Yoga", skill.CategorySports, "Flexibility and mindful movement"},
	{"Running", skill.CategorySports, "Training plans from 5k to marathon"},
	{"Rock Climbing", skill.CategorySports, "Bouldering and belay technique"},
	{"Baking", skill.CategoryCooking, "Bread, pastry and cakes"},
	{"Vegetarian Cooking", skill.CategoryCooking, "Everyday plant based meals"},
	{"Knitting", skill.CategoryCrafts, "Patterns, stitches and finishing"},
	{"Woodworking", skill.CategoryCrafts, "Hand tools and joinery"},
	{"Mathematics", skill.CategoryAcademic, "Algebra through calculus tutoring"},
	{"Chemistry", skill.CategoryAcademic, "High school and intro university chemistry"},
	{"Chess", skill.CategoryOther, "Openings, tactics and endgames"},
	{"Gardening", skill.CategoryOther, "Vegetables, herbs and houseplants"},
}

func catalogCategories() []string {
	seen := map[skill.Category]bool{}
	var out []string
	for _, it := range catalog {
		if !seen[it.Category] {
			seen[it.Category] = true
			out = append(out, string(it.Category))
		}
	}
	return out
}

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := requireColumns(ctx, db, "skills", "id", "name", "category", "description", "created_at"); err != nil {
		return err
	}
	if err := requireCheckValues(ctx, db, "skills", "category", catalogCategories()); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, it := range catalog {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO skills (id, name, category, description) VALUES (gen_random_uuid(), $1, $2, $3) ON CONFLICT DO NOTHING`,
			it.Name,
			string(it.Category),
			it.Description,
		)
		if err != nil {
			return fmt.Errorf("insert %s: %w", it.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
