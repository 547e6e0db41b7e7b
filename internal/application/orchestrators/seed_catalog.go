package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"laxhq/internal/domain/drill"
	"laxhq/internal/domain/plan"
	"laxhq/internal/domain/strategy"
	"laxhq/internal/domain/template"

	"github.com/google/uuid"
)

// DrillStoreForSeed defines the store interface needed by SeedCatalog.
type DrillStoreForSeed interface {
	Save(ctx context.Context, d drill.Drill) error
	List(ctx context.Context) ([]drill.Drill, error)
}

// StrategyStoreForSeed defines the store interface needed by SeedCatalog.
type StrategyStoreForSeed interface {
	Save(ctx context.Context, s strategy.Strategy) error
	List(ctx context.Context) ([]strategy.Strategy, error)
}

// TemplateStoreForSeed defines the store interface needed by SeedCatalog.
type TemplateStoreForSeed interface {
	Save(ctx context.Context, t template.Template) error
	List(ctx context.Context) ([]template.Template, error)
}

// SeedCatalogDeps holds dependencies for SeedCatalog.
type SeedCatalogDeps struct {
	DrillStore    DrillStoreForSeed
	StrategyStore StrategyStoreForSeed
	TemplateStore TemplateStoreForSeed
}

// ExecuteSeedCatalog creates a starter drill and strategy catalog plus one
// official template if the catalog is empty.
func ExecuteSeedCatalog(ctx context.Context, deps SeedCatalogDeps) error {
	existing, err := deps.DrillStore.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil // Already seeded
	}

	drills := []drill.Drill{
		{Title: "Dynamic Warmup", Category: drill.CategoryAdminOps, Description: "Jog, high knees, lunges, arm circles", DurationMinutes: 10},
		{Title: "Line Passing", Category: drill.CategorySkill, Description: "Two lines, right and left hand passing on the run", DurationMinutes: 10},
		{Title: "Star Passing", Category: drill.CategorySkill, Description: "Five points, ball moves across the star, add a second ball", DurationMinutes: 10},
		{Title: "Ground Ball Battles", Category: drill.CategorySkill, Description: "1v1 to a loose ball, box out and scoop through", DurationMinutes: 15},
		{Title: "West Genny 3v2", Category: drill.CategoryTransition, Description: "Continuous 3v2 both directions, outlet to the next wave", DurationMinutes: 20},
		{Title: "4v3 Fast Break", Category: drill.CategoryTransition, Description: "Point man decision making against a rotating triangle", DurationMinutes: 15},
		{Title: "5v5 East Alley", Category: drill.CategoryOffense, Description: "Half field set offense, two-man game on the wing", DurationMinutes: 20},
		{Title: "Slide and Recover", Category: drill.CategoryDefense, Description: "Adjacent slides from the crease, talk through the rotation", DurationMinutes: 15},
		{Title: "Face-Off Reps", Category: drill.CategoryFaceOff, Description: "Clamp and exit reps with wing play", DurationMinutes: 10},
		{Title: "Goalie Warmup Arc", Category: drill.CategoryGoalie, Description: "Around the arc, high to low, freeze on the save", DurationMinutes: 10},
		{Title: "Wall Ball Circuit", Category: drill.CategoryWallBall, Description: "50 right, 50 left, quick stick, one hand", DurationMinutes: 10},
		{Title: "Gut Busters", Category: drill.CategoryConditions, Description: "End line to end line sprint ladder", DurationMinutes: 10},
	}
	for i := range drills {
		drills[i].ID = uuid.New().String()
		if err := deps.DrillStore.Save(ctx, drills[i]); err != nil {
			return err
		}
	}

	strategies := []strategy.Strategy{
		{ID: uuid.New().String(), Name: "1-4-1 Motion", Category: strategy.PhaseSettledOffense, Description: "Carry from X, mumbo behind, wings cut through"},
		{ID: uuid.New().String(), Name: "2-3-1 Offense", Category: strategy.PhaseSettledOffense, Description: "Classic two-man game from the wing"},
		{ID: uuid.New().String(), Name: "Backer Zone", Category: strategy.PhaseSettledDefense, Description: "Five-man zone with a free backer on ball"},
		{ID: uuid.New().String(), Name: "Adjacent Slide Package", Category: strategy.PhaseSettledDefense, Description: "Slide from the adjacent defender, crease covers the skip"},
		{ID: uuid.New().String(), Name: "Banana Clear", Category: strategy.PhaseClearing, Description: "Goalie outlet up the alley, midfielders banana cut to space"},
		{ID: uuid.New().String(), Name: "10-Man Ride", Category: strategy.PhaseRiding, Description: "Goalie takes the far attackman, everyone locks upfield"},
		{ID: uuid.New().String(), Name: "Wing Deny Face-Off", Category: strategy.PhaseFaceOff, Description: "Wings deny the exit lanes, FOGO clamps to himself"},
	}
	for _, s := range strategies {
		if err := deps.StrategyStore.Save(ctx, s); err != nil {
			return err
		}
	}

	// One official starter template built from the seeded drills.
	slot := func(d drill.Drill) plan.TimeSlot {
		inst := plan.DrillInstance{
			PracticeID:     uuid.New().String(),
			DrillID:        d.ID,
			Title:          d.Title,
			Category:       d.Category,
			Description:    d.Description,
			CustomDuration: d.EffectiveDuration(),
		}
		return plan.TimeSlot{ID: uuid.New().String(), Drills: []plan.DrillInstance{inst}, DurationMinutes: inst.CustomDuration}
	}
	starter := template.Template{
		ID:              uuid.New().String(),
		Name:            "Standard 90 Minute Practice",
		Description:     "Warmup, stick work, transition, team concepts, conditioning",
		AgeGroup:        template.AgeGroupAll,
		DurationMinutes: 90,
		TimeSlots: []plan.TimeSlot{
			slot(drills[0]), slot(drills[1]), slot(drills[3]),
			slot(drills[4]), slot(drills[6]), slot(drills[11]),
		},
		Notes:     "Water break after transition. Keep lines short.",
		Official:  true,
		CreatedAt: time.Now(),
	}
	if err := deps.TemplateStore.Save(ctx, starter); err != nil {
		return err
	}

	slog.Info("seed_event", "event", "catalog_seeded", "drills", len(drills), "strategies", len(strategies), "templates", 1)
	return nil
}
