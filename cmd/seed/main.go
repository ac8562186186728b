package main

import (
	"context"
	stdErrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"workspace/internal/access"
	"workspace/internal/auth"
	"workspace/internal/config"
	"workspace/internal/db"
	"workspace/internal/errors"
	"workspace/internal/logger"
	"workspace/internal/model"
	"workspace/internal/repository"
	"workspace/internal/service"
)

var (
	sectionTypes = []string{
		"Table of Contents",
		"Executive Summary",
		"Technical Approach",
		"Design",
		"Capabilities",
		"Focus Document",
		"Narrative",
	}
	reviewers = []string{"Assim", "Bini", "Mami"}
	statuses  = []model.OutlineStatus{
		model.OutlineStatusPending,
		model.OutlineStatusInProgress,
		model.OutlineStatusCompleted,
	}
)

type seedFlags struct {
	databaseURL string
	email       string
	password    string
	name        string
	org         string
	outlines    int
	reset       bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f seedFlags
	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Seed a user, an organization and sample outlines",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), f)
		},
	}
	cmd.Flags().StringVar(&f.databaseURL, "database-url", "", "database URL, defaults to the configured one")
	cmd.Flags().StringVar(&f.email, "email", "demo@example.com", "email of the seeded user")
	cmd.Flags().StringVar(&f.password, "password", "password123", "password of the seeded user")
	cmd.Flags().StringVar(&f.name, "name", "Demo User", "display name of the seeded user")
	cmd.Flags().StringVar(&f.org, "org", "Demo Workspace", "name of the seeded organization")
	cmd.Flags().IntVar(&f.outlines, "outlines", len(sectionTypes), "number of outlines to create")
	cmd.Flags().BoolVar(&f.reset, "reset", false, "drop all tables before seeding")
	return cmd
}

func run(ctx context.Context, f seedFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if f.databaseURL == "" {
		f.databaseURL = cfg.DatabaseURL
	}

	zl, err := logger.New(cfg.LogLevel, "console")
	if err != nil {
		return fmt.Errorf("logger init: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	gormDB, err := db.Open(f.databaseURL, zl)
	if err != nil {
		return err
	}
	if f.reset {
		if err := db.Reset(gormDB); err != nil {
			return err
		}
		zl.Info("tables dropped")
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(gormDB)
	memberRepo := repository.NewMemberRepository(gormDB)
	authService := service.NewAuthService(
		userRepo,
		repository.NewCredentialRepository(gormDB),
		repository.NewSessionRepository(gormDB),
		auth.NewRevocationList(nil),
		cfg.SessionTTL,
		zl,
	)
	gate := access.NewGate(memberRepo)
	organizationService := service.NewOrganizationService(
		gate,
		repository.NewOrganizationRepository(gormDB),
		memberRepo,
		userRepo,
		repository.NewInvitationRepository(gormDB),
	)
	outlineService := service.NewOutlineService(gate, repository.NewOutlineRepository(gormDB))

	user, err := authService.SignUp(ctx, f.email, f.password, f.name)
	if stdErrors.Is(err, errors.ErrUserAlreadyExists) {
		user, err = userRepo.FindByEmail(ctx, f.email)
		zl.Info("user already exists, reusing it", zap.String("email", f.email))
	}
	if err != nil {
		return fmt.Errorf("seed user: %w", err)
	}

	org, err := organizationService.Create(ctx, user.ID, f.org, "")
	if err != nil {
		return fmt.Errorf("seed organization: %w", err)
	}
	zl.Info("organization created", zap.String("id", org.ID.String()), zap.String("slug", org.Slug))

	for i := 0; i < f.outlines; i++ {
		outline := &model.Outline{
			Header:      fmt.Sprintf("%s %d", sectionTypes[i%len(sectionTypes)], i+1),
			SectionType: sectionTypes[i%len(sectionTypes)],
			Status:      statuses[i%len(statuses)],
			Target:      (i + 1) * 5,
			Limit:       (i + 1) * 10,
			Reviewer:    reviewers[i%len(reviewers)],
		}
		if _, err := outlineService.Create(ctx, user.ID, org.ID, outline); err != nil {
			return fmt.Errorf("seed outline %d: %w", i+1, err)
		}
	}

	zl.Info("seed completed",
		zap.String("email", user.Email),
		zap.String("organization", org.Name),
		zap.Int("outlines", f.outlines),
	)
	return nil
}
