package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/Dosada05/sports-portal/models"
	"github.com/Dosada05/sports-portal/repositories"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

// Фейковые репозитории хранят записи в памяти. Методы, не нужные тесту,
// достаются от встроенного интерфейса и паникуют при вызове.

type fakeCaptainRepo struct {
	repositories.CaptainRepository

	mu       sync.Mutex
	captains map[int]*models.Captain
	nextID   int
	// removedPlayers is what DeleteWithPlayers reports.
	removedPlayers int
	updateErr      map[int]error
}

func newFakeCaptainRepo(captains ...*models.Captain) *fakeCaptainRepo {
	r := &fakeCaptainRepo{captains: make(map[int]*models.Captain), nextID: 1, updateErr: map[int]error{}}
	for _, c := range captains {
		r.captains[c.ID] = c
		if c.ID >= r.nextID {
			r.nextID = c.ID + 1
		}
	}
	return r
}

func (r *fakeCaptainRepo) Create(_ context.Context, c *models.Captain) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.captains {
		if existing.Email == c.Email {
			return repositories.ErrCaptainEmailConflict
		}
		if existing.RNumber == c.RNumber {
			return repositories.ErrCaptainRNumberConflict
		}
	}
	c.ID = r.nextID
	r.nextID++
	if c.UniqueID == "" {
		c.UniqueID = fmt.Sprintf("CPT-%04d", c.ID)
	}
	cp := *c
	r.captains[c.ID] = &cp
	return nil
}

func (r *fakeCaptainRepo) get(match func(*models.Captain) bool) (*models.Captain, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.captains {
		if match(c) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repositories.ErrCaptainNotFound
}

func (r *fakeCaptainRepo) GetByID(_ context.Context, id int) (*models.Captain, error) {
	return r.get(func(c *models.Captain) bool { return c.ID == id })
}

func (r *fakeCaptainRepo) GetByEmail(_ context.Context, email string) (*models.Captain, error) {
	return r.get(func(c *models.Captain) bool { return c.Email == email })
}

func (r *fakeCaptainRepo) FindByRNumber(_ context.Context, rNumber string) (*models.Captain, error) {
	return r.get(func(c *models.Captain) bool { return strings.EqualFold(c.RNumber, rNumber) })
}

func (r *fakeCaptainRepo) FindByUniqueID(_ context.Context, uniqueID string) (*models.Captain, error) {
	return r.get(func(c *models.Captain) bool { return strings.EqualFold(c.UniqueID, uniqueID) })
}

func (r *fakeCaptainRepo) UpdateStatus(_ context.Context, id int, status models.RegistrationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.updateErr[id]; err != nil {
		return err
	}
	c, ok := r.captains[id]
	if !ok {
		return repositories.ErrCaptainNotFound
	}
	c.Status = status
	return nil
}

func (r *fakeCaptainRepo) DeleteWithPlayers(_ context.Context, id int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.captains[id]; !ok {
		return 0, repositories.ErrCaptainNotFound
	}
	delete(r.captains, id)
	return r.removedPlayers, nil
}

func (r *fakeCaptainRepo) CountByStatus(context.Context) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int{}
	for _, c := range r.captains {
		counts[string(c.Status)]++
	}
	return counts, nil
}

type fakeDepartmentPlayerRepo struct {
	repositories.DepartmentPlayerRepository

	mu      sync.Mutex
	players map[int]*models.DepartmentPlayer
	nextID  int
	nextUID int

	identityMu sync.Mutex
	locked     []string
}

func newFakeDepartmentPlayerRepo(players ...*models.DepartmentPlayer) *fakeDepartmentPlayerRepo {
	r := &fakeDepartmentPlayerRepo{players: make(map[int]*models.DepartmentPlayer), nextID: 1, nextUID: 100}
	for _, p := range players {
		r.players[p.ID] = p
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}
	return r
}

func (r *fakeDepartmentPlayerRepo) NextUniqueID(context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextUID++
	return fmt.Sprintf("PLY-%04d", r.nextUID), nil
}

func (r *fakeDepartmentPlayerRepo) Create(ctx context.Context, p *models.DepartmentPlayer) error {
	if p.UniqueID == "" {
		uid, _ := r.NextUniqueID(ctx)
		p.UniqueID = uid
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID
	r.nextID++
	cp := *p
	r.players[p.ID] = &cp
	return nil
}

func (r *fakeDepartmentPlayerRepo) find(match func(*models.DepartmentPlayer) bool) []models.DepartmentPlayer {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.DepartmentPlayer
	for id := 1; id < r.nextID; id++ {
		if p, ok := r.players[id]; ok && match(p) {
			out = append(out, *p)
		}
	}
	return out
}

func (r *fakeDepartmentPlayerRepo) GetByID(_ context.Context, id int) (*models.DepartmentPlayer, error) {
	found := r.find(func(p *models.DepartmentPlayer) bool { return p.ID == id })
	if len(found) == 0 {
		return nil, repositories.ErrDepartmentPlayerNotFound
	}
	return &found[0], nil
}

func (r *fakeDepartmentPlayerRepo) FindByRNumber(_ context.Context, rNumber string) (*models.DepartmentPlayer, error) {
	found := r.find(func(p *models.DepartmentPlayer) bool { return strings.EqualFold(p.RNumber, rNumber) })
	if len(found) == 0 {
		return nil, repositories.ErrDepartmentPlayerNotFound
	}
	return &found[0], nil
}

func (r *fakeDepartmentPlayerRepo) FindByUniqueID(_ context.Context, uniqueID string) (*models.DepartmentPlayer, error) {
	found := r.find(func(p *models.DepartmentPlayer) bool { return strings.EqualFold(p.UniqueID, uniqueID) })
	if len(found) == 0 {
		return nil, repositories.ErrDepartmentPlayerNotFound
	}
	return &found[0], nil
}

func (r *fakeDepartmentPlayerRepo) ListByRNumber(_ context.Context, rNumber string) ([]models.DepartmentPlayer, error) {
	return r.find(func(p *models.DepartmentPlayer) bool { return strings.EqualFold(p.RNumber, rNumber) }), nil
}

func (r *fakeDepartmentPlayerRepo) List(_ context.Context, filter models.ListFilter) ([]models.DepartmentPlayer, int, error) {
	found := r.find(func(p *models.DepartmentPlayer) bool {
		return filter.CaptainID == nil || p.CaptainID == *filter.CaptainID
	})
	return found, len(found), nil
}

func (r *fakeDepartmentPlayerRepo) Update(_ context.Context, p *models.DepartmentPlayer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[p.ID]; !ok {
		return repositories.ErrDepartmentPlayerNotFound
	}
	cp := *p
	r.players[p.ID] = &cp
	return nil
}

func (r *fakeDepartmentPlayerRepo) UpdateStatus(_ context.Context, id int, status models.RegistrationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		return repositories.ErrDepartmentPlayerNotFound
	}
	p.Status = status
	return nil
}

func (r *fakeDepartmentPlayerRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[id]; !ok {
		return repositories.ErrDepartmentPlayerNotFound
	}
	delete(r.players, id)
	return nil
}

func (r *fakeDepartmentPlayerRepo) WithIdentityLock(_ context.Context, rNumber string, fn func(repositories.DepartmentPlayerRepository) error) error {
	r.identityMu.Lock()
	defer r.identityMu.Unlock()
	r.mu.Lock()
	r.locked = append(r.locked, rNumber)
	r.mu.Unlock()
	return fn(r)
}

type fakeTeamRepo struct {
	repositories.TeamRepository
	teams map[int]*models.Team
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	cp := *t
	return &cp, nil
}

type fakeMatchRepo struct {
	repositories.MatchRepository
	matches map[int]*models.Match
	nextID  int
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: map[int]*models.Match{}, nextID: 1}
}

func (r *fakeMatchRepo) Create(_ context.Context, m *models.Match) error {
	m.ID = r.nextID
	r.nextID++
	cp := *m
	r.matches[m.ID] = &cp
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	m, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMatchRepo) UpdateScore(_ context.Context, id int, scoreA, scoreB int, status models.MatchStatus) error {
	m, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.ScoreA, m.ScoreB, m.Status = scoreA, scoreB, status
	return nil
}

func (r *fakeMatchRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.matches[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(r.matches, id)
	return nil
}

type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) PublishMatch(eventType string, _ *models.Match) {
	p.events = append(p.events, eventType)
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []StatusNotification
}

func (n *recordingNotifier) NotifyStatusChange(_ context.Context, note StatusNotification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, note)
}

type countingDPRepo struct {
	repositories.DepartmentPlayerRepository
	n int
}

func (r *countingDPRepo) Count(context.Context) (int, error) { return r.n, nil }

type countingPlayerRepo struct {
	repositories.PlayerRepository
	n int
}

func (r *countingPlayerRepo) Count(context.Context) (int, error) { return r.n, nil }

type countingTeamRepo struct {
	repositories.TeamRepository
	n int
}

func (r *countingTeamRepo) Count(context.Context) (int, error) { return r.n, nil }

type countingMatchRepo struct {
	repositories.MatchRepository
	byStatus map[string]int
}

func (r *countingMatchRepo) CountByStatus(context.Context) (map[string]int, error) {
	return r.byStatus, nil
}

type countingAnnouncementRepo struct {
	repositories.AnnouncementRepository
	n int
}

func (r *countingAnnouncementRepo) Count(context.Context) (int, error) { return r.n, nil }
