package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Dosada05/sports-portal/config"
	"github.com/Dosada05/sports-portal/db"
	"github.com/Dosada05/sports-portal/models"
	"github.com/Dosada05/sports-portal/repositories"
	"github.com/Dosada05/sports-portal/services"
	"github.com/brianvoe/gofakeit/v6"
	_ "github.com/lib/pq"
	"github.com/urfave/cli/v2"
)

var demoSports = []string{"Football", "Cricket", "Basketball", "Volleyball"}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	var dbConn *sql.DB
	cliApp := &cli.App{
		Name:  "seed",
		Usage: "database setup for the sports portal",
		Before: func(c *cli.Context) error {
			dbConn, err = db.Connect(cfg.DatabaseURL, 5*time.Second)
			return err
		},
		After: func(c *cli.Context) error {
			if dbConn != nil {
				return dbConn.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "create missing tables and indexes",
				Action: func(c *cli.Context) error {
					if err := db.Migrate(c.Context, dbConn); err != nil {
						return err
					}
					fmt.Println("schema applied")
					return nil
				},
			},
			{
				Name:  "admin",
				Usage: "insert the default admin if no admin exists",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Value: cfg.DefaultAdmin.Name},
					&cli.StringFlag{Name: "email", Value: cfg.DefaultAdmin.Email},
					&cli.StringFlag{Name: "password", Value: cfg.DefaultAdmin.Password, EnvVars: []string{"DEFAULT_ADMIN_PASSWORD"}},
				},
				Action: func(c *cli.Context) error {
					adminService := services.NewAdminService(repositories.NewPostgresAdminRepository(dbConn))
					created, err := adminService.EnsureDefaultAdmin(c.Context, services.AdminInput{
						Name:     c.String("name"),
						Email:    c.String("email"),
						Password: c.String("password"),
					})
					if err != nil {
						return err
					}
					if created {
						fmt.Printf("admin %s created\n", c.String("email"))
					} else {
						fmt.Println("an admin already exists, nothing to do")
					}
					return nil
				},
			},
			{
				Name:  "demo",
				Usage: "fill teams, schedule and announcements with generated data",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "teams", Value: 2, Usage: "teams per sport"},
					&cli.Int64Flag{Name: "seed", Value: 0, Usage: "random seed (0 - random)"},
				},
				Action: func(c *cli.Context) error {
					faker := gofakeit.New(c.Int64("seed"))
					return seedDemo(c, dbConn, faker, c.Int("teams"))
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		logger.Error("seed failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// seedDemo goes through the services so generated records pass the same
// validation as API input.
func seedDemo(c *cli.Context, dbConn *sql.DB, faker *gofakeit.Faker, teamsPerSport int) error {
	ctx := c.Context
	teamService := services.NewTeamService(
		repositories.NewPostgresTeamRepository(dbConn),
		repositories.NewPostgresPlayerRepository(dbConn),
		nil, slog.Default(),
	)
	scheduleService := services.NewScheduleService(repositories.NewPostgresScheduleRepository(dbConn))
	announcementService := services.NewAnnouncementService(repositories.NewPostgresAnnouncementRepository(dbConn))

	teams := 0
	for _, sport := range demoSports {
		for i := 0; i < teamsPerSport; i++ {
			_, err := teamService.Create(ctx, services.TeamInput{
				Name:        fmt.Sprintf("%s %s", faker.City(), faker.Animal()),
				Sport:       sport,
				Department:  faker.RandomString([]string{"CSE", "ECE", "MECH", "CIVIL", "EEE"}),
				Coach:       faker.Name(),
				CaptainName: faker.Name(),
				Description: faker.Sentence(12),
			})
			if errors.Is(err, services.ErrTeamNameConflict) {
				continue
			}
			if err != nil {
				return fmt.Errorf("create team: %w", err)
			}
			teams++
		}
	}

	genders := []string{"Boys", "Girls", "Mixed"}
	start := time.Now().AddDate(0, 0, 7)
	for i, sport := range demoSports {
		day := start.AddDate(0, 0, i)
		if _, err := scheduleService.Create(ctx, services.ScheduleInput{
			SerialNo: i + 1,
			Date:     day.Format("2006-01-02"),
			Time:     fmt.Sprintf("%02d:00", 9+faker.IntRange(0, 8)),
			Activity: sport + " " + faker.RandomString([]string{"league", "semi final", "final"}),
			Sport:    sport,
			Gender:   faker.RandomString(genders),
		}); err != nil {
			return fmt.Errorf("create schedule entry: %w", err)
		}
	}
	if _, err := scheduleService.Create(ctx, services.ScheduleInput{
		SerialNo: len(demoSports) + 1,
		Date:     start.Format("2006-01-02"),
		Time:     "08:30",
		Activity: "Opening ceremony",
		Sport:    models.GeneralSport,
	}); err != nil {
		return fmt.Errorf("create schedule entry: %w", err)
	}

	priorities := []models.AnnouncementPriority{
		models.PriorityUrgent, models.PriorityHigh, models.PriorityNormal, models.PriorityLow,
	}
	for _, p := range priorities {
		if _, err := announcementService.Create(ctx, services.AnnouncementInput{
			Title:       faker.Sentence(4),
			Description: faker.Paragraph(1, 3, 12, " "),
			Priority:    p,
		}); err != nil {
			return fmt.Errorf("create announcement: %w", err)
		}
	}

	fmt.Printf("created %d teams, %d schedule entries, %d announcements\n", teams, len(demoSports)+1, len(priorities))
	return nil
}
