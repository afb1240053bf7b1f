package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"pdv-backend-go/internal/db"
	"pdv-backend-go/internal/models"
)

// memColaboradorRepo is an in-memory db.ColaboradorRepository used to drive
// the services without Firestore.
type memColaboradorRepo struct {
	mu    sync.Mutex
	items map[string]*models.Colaborador

	failCreate bool
	failUpdate bool
}

func newMemColaboradorRepo(seed ...*models.Colaborador) *memColaboradorRepo {
	r := &memColaboradorRepo{items: map[string]*models.Colaborador{}}
	for _, c := range seed {
		cp := *c
		r.items[c.ID] = &cp
	}
	return r
}

func (r *memColaboradorRepo) Create(_ context.Context, c *models.Colaborador) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return errors.New("simulated write failure")
	}
	if _, ok := r.items[c.ID]; ok {
		return fmt.Errorf("document %s already exists", c.ID)
	}
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *memColaboradorRepo) GetByID(_ context.Context, id string) (*models.Colaborador, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memColaboradorRepo) GetAll(_ context.Context) ([]*models.Colaborador, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Colaborador, 0, len(r.items))
	for _, c := range r.items {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memColaboradorRepo) GetByStatus(ctx context.Context, status models.StatusColaborador) ([]*models.Colaborador, error) {
	all, _ := r.GetAll(ctx)
	out := []*models.Colaborador{}
	for _, c := range all {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memColaboradorRepo) FindByEmail(ctx context.Context, email, excludeID string) ([]*models.Colaborador, error) {
	all, _ := r.GetAll(ctx)
	out := []*models.Colaborador{}
	for _, c := range all {
		if c.Email == email && c.ID != excludeID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memColaboradorRepo) Update(_ context.Context, id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdate {
		return errors.New("simulated write failure")
	}
	c, ok := r.items[id]
	if !ok {
		return db.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "nome":
			c.Nome = v.(string)
		case "email":
			c.Email = v.(string)
		case "telefone":
			c.Telefone = v.(string)
		case "cargo":
			c.Cargo = v.(string)
		case "departamento":
			c.Departamento = v.(string)
		case "dataAdmissao":
			c.DataAdmissao = v.(string)
		case "status":
			c.Status = models.StatusColaborador(v.(string))
		case "observacoes":
			c.Observacoes = v.(string)
		case "permissoes":
			c.Permissoes = v.([]models.Permissao)
		}
	}
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memColaboradorRepo) UpdatePermissoes(ctx context.Context, id string, permissoes []models.Permissao) error {
	return r.Update(ctx, id, map[string]interface{}{"permissoes": permissoes})
}

func (r *memColaboradorRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return db.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// memUserRepo is an in-memory db.UserRepository.
type memUserRepo struct {
	mu    sync.Mutex
	items map[string]*models.AuthUser

	failCreate bool
}

func newMemUserRepo(seed ...*models.AuthUser) *memUserRepo {
	r := &memUserRepo{items: map[string]*models.AuthUser{}}
	for _, u := range seed {
		cp := *u
		r.items[u.UID] = &cp
	}
	return r
}

func (r *memUserRepo) Create(_ context.Context, user *models.AuthUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return errors.New("simulated write failure")
	}
	cp := *user
	r.items[user.UID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, uid string) (*models.AuthUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.items[uid]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) Update(_ context.Context, user *models.AuthUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[user.UID]; !ok {
		return db.ErrNotFound
	}
	cp := *user
	cp.UpdatedAt = time.Now().UTC()
	r.items[user.UID] = &cp
	return nil
}

func (r *memUserRepo) MarkFirstLoginDone(_ context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.items[uid]
	if !ok {
		return db.ErrNotFound
	}
	u.IsFirstLogin = false
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memUserRepo) UpdatePreferences(_ context.Context, uid string, prefs models.UserPreferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.items[uid]
	if !ok {
		return db.ErrNotFound
	}
	u.Preferences = prefs
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// stubAuthAccounts records identity-provider calls.
type stubAuthAccounts struct {
	mu       sync.Mutex
	nextUID  int
	created  []string
	deleted  []string
	pwSet    map[string]string
	existing map[string]bool

	failCreate error
	resetLink  string
	failReset  error
}

func newStubAuthAccounts() *stubAuthAccounts {
	return &stubAuthAccounts{pwSet: map[string]string{}, existing: map[string]bool{}, resetLink: "https://example.com/reset"}
}

func (s *stubAuthAccounts) CreateAccount(_ context.Context, email, _, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreate != nil {
		return "", s.failCreate
	}
	s.nextUID++
	uid := fmt.Sprintf("uid-%d", s.nextUID)
	s.created = append(s.created, uid)
	s.existing[email] = true
	return uid, nil
}

func (s *stubAuthAccounts) DeleteAccount(_ context.Context, uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, uid)
	return nil
}

func (s *stubAuthAccounts) SetPassword(_ context.Context, uid, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pwSet[uid] = newPassword
	return nil
}

func (s *stubAuthAccounts) PasswordResetLink(_ context.Context, email string) (string, error) {
	if s.failReset != nil {
		return "", s.failReset
	}
	return s.resetLink, nil
}

// memCache is an in-memory cache.Cache without expiry handling.
type memCache struct {
	mu      sync.Mutex
	entries map[string]string
	gets    int
	hits    int
}

func newMemCache() *memCache {
	return &memCache{entries: map[string]string{}}
}

func (c *memCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return v, nil
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value.(string)
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

// recordedEmail captures one dispatched email for assertions.
type recordedEmail struct {
	kind        string
	to          string
	displayName string
	payload     string
}

// stubMailService records sends and can simulate delivery failures.
type stubMailService struct {
	mu   sync.Mutex
	sent []recordedEmail
	fail bool
}

func (s *stubMailService) record(e recordedEmail) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("simulated delivery failure")
	}
	s.sent = append(s.sent, e)
	return nil
}

func (s *stubMailService) SendWelcomeEmail(_ context.Context, email, displayName, temporaryPassword string) error {
	return s.record(recordedEmail{kind: "welcome", to: email, displayName: displayName, payload: temporaryPassword})
}

func (s *stubMailService) SendPasswordResetEmail(_ context.Context, email, displayName, resetLink string) error {
	return s.record(recordedEmail{kind: "password_reset", to: email, displayName: displayName, payload: resetLink})
}

func (s *stubMailService) SendStatusChangeEmail(_ context.Context, email, displayName string, newStatus models.StatusColaborador) error {
	return s.record(recordedEmail{kind: "status_change", to: email, displayName: displayName, payload: string(newStatus)})
}

// stubAuditService collects audit entries.
type stubAuditService struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func (s *stubAuditService) CreateAuditLog(_ context.Context, logEntry models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, logEntry)
	return nil
}

func (s *stubAuditService) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Action)
	}
	return out
}
