package services

import (
	"context"
	"fmt"

	"github.com/Dosada05/sports-portal/models"
	"github.com/Dosada05/sports-portal/repositories"
	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

type dashboardService struct {
	captainRepo      repositories.CaptainRepository
	dpRepo           repositories.DepartmentPlayerRepository
	playerRepo       repositories.PlayerRepository
	teamRepo         repositories.TeamRepository
	matchRepo        repositories.MatchRepository
	announcementRepo repositories.AnnouncementRepository
}

func NewDashboardService(
	captainRepo repositories.CaptainRepository,
	dpRepo repositories.DepartmentPlayerRepository,
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	announcementRepo repositories.AnnouncementRepository,
) DashboardService {
	return &dashboardService{
		captainRepo:      captainRepo,
		dpRepo:           dpRepo,
		playerRepo:       playerRepo,
		teamRepo:         teamRepo,
		matchRepo:        matchRepo,
		announcementRepo: announcementRepo,
	}
}

// Stats runs the counters concurrently; each goroutine writes its own field.
func (s *dashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		byStatus, err := s.captainRepo.CountByStatus(gctx)
		if err != nil {
			return fmt.Errorf("count captains: %w", err)
		}
		stats.CaptainsByStatus = byStatus
		for _, n := range byStatus {
			stats.CaptainsTotal += n
		}
		return nil
	})
	g.Go(func() error {
		n, err := s.dpRepo.Count(gctx)
		if err != nil {
			return fmt.Errorf("count department players: %w", err)
		}
		stats.DepartmentPlayers = n
		return nil
	})
	g.Go(func() error {
		n, err := s.playerRepo.Count(gctx)
		if err != nil {
			return fmt.Errorf("count players: %w", err)
		}
		stats.PlayersTotal = n
		return nil
	})
	g.Go(func() error {
		n, err := s.teamRepo.Count(gctx)
		if err != nil {
			return fmt.Errorf("count teams: %w", err)
		}
		stats.TeamsTotal = n
		return nil
	})
	g.Go(func() error {
		byStatus, err := s.matchRepo.CountByStatus(gctx)
		if err != nil {
			return fmt.Errorf("count matches: %w", err)
		}
		stats.MatchesByStatus = byStatus
		return nil
	})
	g.Go(func() error {
		n, err := s.announcementRepo.Count(gctx)
		if err != nil {
			return fmt.Errorf("count announcements: %w", err)
		}
		stats.Announcements = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build dashboard stats: %w", err)
	}
	return stats, nil
}
