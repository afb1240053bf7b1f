package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"pdv-backend-go/internal/db"
	"pdv-backend-go/internal/models"
	"pdv-backend-go/pkg/cache"
	"pdv-backend-go/pkg/password"
	"pdv-backend-go/pkg/phone"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const directoryCacheTTL = time.Minute

// colaboradorService implements the ColaboradorService interface.
type colaboradorService struct {
	colaboradorRepo db.ColaboradorRepository
	userRepo        db.UserRepository
	authAccounts    db.AuthAccounts
	mailService     MailService
	auditService    AuditService
	cache           cache.Cache // optional, nil disables caching
	logger          *zap.Logger
}

// NewColaboradorService creates a new ColaboradorService instance. The cache
// may be nil, in which case every List goes straight to the repository.
func NewColaboradorService(
	cr db.ColaboradorRepository,
	ur db.UserRepository,
	aa db.AuthAccounts,
	ms MailService,
	as AuditService,
	c cache.Cache,
	logger *zap.Logger,
) ColaboradorService {
	return &colaboradorService{
		colaboradorRepo: cr,
		userRepo:        ur,
		authAccounts:    aa,
		mailService:     ms,
		auditService:    as,
		cache:           c,
		logger:          logger,
	}
}

// List loads the working set (the full collection, or the server-side status
// query when a specific status is requested), applies the four independent
// filter predicates as a conjunction, sorts by pt-BR collation on nome and
// returns the requested page plus totals and the dynamically derived
// departamento/cargo option lists.
func (s *colaboradorService) List(ctx context.Context, query ListColaboradoresQuery) (*ColaboradorPage, error) {
	workingSet, err := s.loadWorkingSet(ctx, query.Status)
	if err != nil {
		return nil, err
	}

	// Option lists derive from the loaded working set, so they shrink and
	// grow as the underlying query changes.
	departamentos := distinctDepartamentos(workingSet)
	cargos := distinctCargos(workingSet)

	filtered := filterColaboradores(workingSet, query)
	sortByNome(filtered)

	total := len(filtered)
	totalPages := (total + PageSize - 1) / PageSize

	page := query.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &ColaboradorPage{
		Items:         filtered[start:end],
		Total:         total,
		Page:          page,
		PageSize:      PageSize,
		TotalPages:    totalPages,
		Departamentos: departamentos,
		Cargos:        cargos,
	}, nil
}

// loadWorkingSet fetches the directory working set, consulting the cache when
// one is configured. The cache always holds a full working set per status
// scope, never a partial page.
func (s *colaboradorService) loadWorkingSet(ctx context.Context, statusFilter string) ([]*models.Colaborador, error) {
	st := models.StatusColaborador(statusFilter)
	specific := statusFilter != "" && statusFilter != FilterAll
	if specific && !st.Valid() {
		return nil, NewValidationError(map[string]string{"status": "Status desconhecido: " + statusFilter})
	}

	key := "colaboradores:all"
	if specific {
		key = "colaboradores:status:" + statusFilter
	}

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err == nil && raw != "" {
			var cached []*models.Colaborador
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
			s.logger.Warn("discarding undecodable directory cache entry", zap.String("key", key))
		}
	}

	var (
		set []*models.Colaborador
		err error
	)
	if specific {
		set, err = s.colaboradorRepo.GetByStatus(ctx, st)
	} else {
		set, err = s.colaboradorRepo.GetAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load colaboradores: %w", err)
	}

	if s.cache != nil {
		if raw, err := json.Marshal(set); err == nil {
			if err := s.cache.Set(ctx, key, string(raw), directoryCacheTTL); err != nil {
				s.logger.Warn("failed to cache directory working set", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return set, nil
}

// invalidateDirectoryCache drops every cached working set after a mutation.
func (s *colaboradorService) invalidateDirectoryCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	keys := []string{
		"colaboradores:all",
		"colaboradores:status:" + string(models.StatusAtivo),
		"colaboradores:status:" + string(models.StatusInativo),
		"colaboradores:status:" + string(models.StatusSuspenso),
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("failed to invalidate directory cache", zap.Error(err))
	}
}

// filterColaboradores applies the conjunction of the four filter predicates:
// free-text over nome/email/cargo, status, departamento and cargo equality.
func filterColaboradores(set []*models.Colaborador, query ListColaboradoresQuery) []*models.Colaborador {
	term := strings.ToLower(strings.TrimSpace(query.Busca))
	out := make([]*models.Colaborador, 0, len(set))
	for _, c := range set {
		matchesBusca := term == "" ||
			strings.Contains(strings.ToLower(c.Nome), term) ||
			strings.Contains(strings.ToLower(c.Email), term) ||
			strings.Contains(strings.ToLower(c.Cargo), term)

		matchesStatus := query.Status == "" || query.Status == FilterAll || string(c.Status) == query.Status
		matchesDepartamento := query.Departamento == "" || query.Departamento == FilterAll || c.Departamento == query.Departamento
		matchesCargo := query.Cargo == "" || query.Cargo == FilterAll || c.Cargo == query.Cargo

		if matchesBusca && matchesStatus && matchesDepartamento && matchesCargo {
			out = append(out, c)
		}
	}
	return out
}

// sortByNome orders the slice by locale-aware pt-BR comparison on nome.
func sortByNome(set []*models.Colaborador) {
	coll := collate.New(language.BrazilianPortuguese)
	sort.SliceStable(set, func(i, j int) bool {
		return coll.CompareString(set[i].Nome, set[j].Nome) < 0
	})
}

func distinctDepartamentos(set []*models.Colaborador) []string {
	return distinct(set, func(c *models.Colaborador) string { return c.Departamento })
}

func distinctCargos(set []*models.Colaborador) []string {
	return distinct(set, func(c *models.Colaborador) string { return c.Cargo })
}

func distinct(set []*models.Colaborador, field func(*models.Colaborador) string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, c := range set {
		v := field(c)
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// GetByID retrieves a colaborador by its business identifier.
func (s *colaboradorService) GetByID(ctx context.Context, id string) (*models.Colaborador, error) {
	c, err := s.colaboradorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w (id: %s)", ErrColaboradorNotFound, id)
		}
		return nil, fmt.Errorf("failed to get colaborador '%s': %w", id, err)
	}
	return c, nil
}

// validateColaboradorData runs the synchronous field validation used on
// create: required nome/cargo/departamento/dataAdmissao, email format, phone
// mask when present, known status.
func validateColaboradorData(req models.CreateColaboradorRequest) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(req.Nome) == "" {
		fields["nome"] = "Nome é obrigatório"
	}
	if strings.TrimSpace(req.Email) == "" {
		fields["email"] = "Email é obrigatório"
	} else if !emailPattern.MatchString(req.Email) {
		fields["email"] = "Email inválido"
	}
	if !phone.Validate(phone.Format(req.Telefone)) {
		fields["telefone"] = "Telefone deve estar no formato (11) 99999-9999"
	}
	if strings.TrimSpace(req.Cargo) == "" {
		fields["cargo"] = "Cargo é obrigatório"
	}
	if strings.TrimSpace(req.Departamento) == "" {
		fields["departamento"] = "Departamento é obrigatório"
	}
	if strings.TrimSpace(req.DataAdmissao) == "" {
		fields["dataAdmissao"] = "Data de admissão é obrigatória"
	}
	if !req.Status.Valid() {
		fields["status"] = "Status desconhecido: " + string(req.Status)
	}
	return fields
}

// CreateWithAccount is the provisioning flow:
//
//  1. check email uniqueness in the collection (application-level, a race
//     window with a concurrent create is accepted);
//  2. create the identity-provider account with a generated temporary password;
//  3. write the backend profile and the colaborador document, keyed by the
//     new account UID;
//  4. best-effort send the welcome email with the temporary password.
//
// If a document write fails after the account exists, the account is deleted
// so no orphan is left behind. An email failure never rolls anything back.
func (s *colaboradorService) CreateWithAccount(ctx context.Context, criadoPor string, req models.CreateColaboradorRequest) (*models.Colaborador, error) {
	if fields := validateColaboradorData(req); len(fields) > 0 {
		return nil, NewValidationError(fields)
	}

	existing, err := s.colaboradorRepo.FindByEmail(ctx, req.Email, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if len(existing) > 0 {
		return nil, ErrEmailConflict
	}

	tempPassword := password.GenerateTemporary()

	uid, err := s.authAccounts.CreateAccount(ctx, req.Email, tempPassword, req.Nome)
	if err != nil {
		return nil, translateAuthError(err)
	}

	now := time.Now().UTC()
	user := &models.AuthUser{
		UID:           uid,
		Email:         req.Email,
		DisplayName:   req.Nome,
		Role:          models.RoleColaborador,
		ColaboradorID: uid,
		IsFirstLogin:  true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.compensateAccount(ctx, uid)
		return nil, fmt.Errorf("failed to create user profile for '%s': %w", req.Email, err)
	}

	colaborador := &models.Colaborador{
		ID:           uid,
		Nome:         req.Nome,
		Email:        req.Email,
		Telefone:     phone.Format(req.Telefone),
		Cargo:        req.Cargo,
		Departamento: req.Departamento,
		DataAdmissao: req.DataAdmissao,
		Status:       req.Status,
		Permissoes:   []models.Permissao{},
		Observacoes:  req.Observacoes,
		CriadoPor:    criadoPor,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.colaboradorRepo.Create(ctx, colaborador); err != nil {
		s.compensateAccount(ctx, uid)
		return nil, fmt.Errorf("failed to create colaborador document for '%s': %w", req.Email, err)
	}

	// Welcome email is best-effort: the record and the account are kept even
	// when notification fails.
	if err := s.mailService.SendWelcomeEmail(ctx, req.Email, req.Nome, tempPassword); err != nil {
		s.logger.Warn("welcome email dispatch failed",
			zap.String("email", req.Email),
			zap.Error(err),
		)
	}

	s.audit(ctx, criadoPor, "COLABORADOR_CREATE", uid, map[string]interface{}{
		"nome":  colaborador.Nome,
		"email": colaborador.Email,
	})
	s.invalidateDirectoryCache(ctx)

	return colaborador, nil
}

// compensateAccount deletes an auth account left behind by a failed document
// write. A failed compensation is logged; there is nothing else to do.
func (s *colaboradorService) compensateAccount(ctx context.Context, uid string) {
	if err := s.authAccounts.DeleteAccount(ctx, uid); err != nil {
		s.logger.Error("failed to delete orphaned auth account",
			zap.String("uid", uid),
			zap.Error(err),
		)
	}
}

// Update applies a partial update. An email change re-runs the uniqueness
// check excluding the record itself; a status change best-effort notifies the
// colaborador by email.
func (s *colaboradorService) Update(ctx context.Context, id string, req models.UpdateColaboradorRequest) (*models.Colaborador, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]string{}
	updates := map[string]interface{}{}

	if req.Nome != nil {
		if strings.TrimSpace(*req.Nome) == "" {
			fields["nome"] = "Nome é obrigatório"
		} else {
			updates["nome"] = *req.Nome
		}
	}
	if req.Email != nil {
		if !emailPattern.MatchString(*req.Email) {
			fields["email"] = "Email inválido"
		} else if *req.Email != existing.Email {
			conflicts, err := s.colaboradorRepo.FindByEmail(ctx, *req.Email, id)
			if err != nil {
				return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
			}
			if len(conflicts) > 0 {
				return nil, ErrEmailConflict
			}
			updates["email"] = *req.Email
		}
	}
	if req.Telefone != nil {
		if masked := phone.Format(*req.Telefone); !phone.Validate(masked) {
			fields["telefone"] = "Telefone deve estar no formato (11) 99999-9999"
		} else {
			updates["telefone"] = masked
		}
	}
	if req.Cargo != nil {
		if strings.TrimSpace(*req.Cargo) == "" {
			fields["cargo"] = "Cargo é obrigatório"
		} else {
			updates["cargo"] = *req.Cargo
		}
	}
	if req.Departamento != nil {
		if strings.TrimSpace(*req.Departamento) == "" {
			fields["departamento"] = "Departamento é obrigatório"
		} else {
			updates["departamento"] = *req.Departamento
		}
	}
	if req.DataAdmissao != nil {
		if strings.TrimSpace(*req.DataAdmissao) == "" {
			fields["dataAdmissao"] = "Data de admissão é obrigatória"
		} else {
			updates["dataAdmissao"] = *req.DataAdmissao
		}
	}
	statusChanged := false
	if req.Status != nil {
		if !req.Status.Valid() {
			fields["status"] = "Status desconhecido: " + string(*req.Status)
		} else {
			updates["status"] = string(*req.Status)
			statusChanged = *req.Status != existing.Status
		}
	}
	if req.Observacoes != nil {
		updates["observacoes"] = *req.Observacoes
	}

	if len(fields) > 0 {
		return nil, NewValidationError(fields)
	}
	if len(updates) == 0 {
		return existing, nil
	}

	if err := s.colaboradorRepo.Update(ctx, id, updates); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w (id: %s)", ErrColaboradorNotFound, id)
		}
		return nil, fmt.Errorf("failed to update colaborador '%s': %w", id, err)
	}

	updated, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if statusChanged {
		if err := s.mailService.SendStatusChangeEmail(ctx, updated.Email, updated.Nome, updated.Status); err != nil {
			s.logger.Warn("status change email dispatch failed",
				zap.String("email", updated.Email),
				zap.Error(err),
			)
		}
	}

	s.audit(ctx, "", "COLABORADOR_UPDATE", id, map[string]interface{}{
		"updatedFields": updateKeys(updates),
	})
	s.invalidateDirectoryCache(ctx)

	return updated, nil
}

// Delete removes the colaborador document. The linked auth account is also
// removed so a deleted colaborador can no longer sign in.
func (s *colaboradorService) Delete(ctx context.Context, id string) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.colaboradorRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete colaborador '%s': %w", id, err)
	}

	if err := s.authAccounts.DeleteAccount(ctx, id); err != nil {
		// The document is already gone; log and continue.
		s.logger.Warn("failed to delete auth account of removed colaborador",
			zap.String("uid", id),
			zap.Error(err),
		)
	}

	s.audit(ctx, "", "COLABORADOR_DELETE", id, map[string]interface{}{
		"nome": existing.Nome,
	})
	s.invalidateDirectoryCache(ctx)
	return nil
}

// UpdatePermissoes persists the full permission list back onto the record.
func (s *colaboradorService) UpdatePermissoes(ctx context.Context, id string, permissoes []models.Permissao) (*models.Colaborador, error) {
	if fields := validatePermissoes(permissoes); len(fields) > 0 {
		return nil, NewValidationError(fields)
	}

	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if permissoes == nil {
		permissoes = []models.Permissao{}
	}
	if err := s.colaboradorRepo.UpdatePermissoes(ctx, id, permissoes); err != nil {
		return nil, fmt.Errorf("failed to update permissions of colaborador '%s': %w", id, err)
	}

	s.audit(ctx, "", "COLABORADOR_PERMISSOES_UPDATE", id, map[string]interface{}{
		"modulos": len(permissoes),
	})
	s.invalidateDirectoryCache(ctx)

	return s.GetByID(ctx, id)
}

// TogglePermissao flips one flag for one module, keeping at most one
// permission entry per module.
func (s *colaboradorService) TogglePermissao(ctx context.Context, id string, modulo models.ModuloSistema, flag PermissaoFlag, value bool) (*models.Colaborador, error) {
	fields := map[string]string{}
	if !modulo.Valid() {
		fields["modulo"] = "Módulo desconhecido: " + string(modulo)
	}
	if !flag.Valid() {
		fields["flag"] = "Permissão desconhecida: " + string(flag)
	}
	if len(fields) > 0 {
		return nil, NewValidationError(fields)
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	permissoes := UpsertPermissao(existing.Permissoes, modulo, flag, value)
	if err := s.colaboradorRepo.UpdatePermissoes(ctx, id, permissoes); err != nil {
		return nil, fmt.Errorf("failed to toggle permission of colaborador '%s': %w", id, err)
	}

	s.audit(ctx, "", "COLABORADOR_PERMISSOES_UPDATE", id, map[string]interface{}{
		"modulo": string(modulo),
		"flag":   string(flag),
		"value":  value,
	})
	s.invalidateDirectoryCache(ctx)

	return s.GetByID(ctx, id)
}

// audit records a best-effort audit log entry.
func (s *colaboradorService) audit(ctx context.Context, userID, action, targetID string, details map[string]interface{}) {
	if s.auditService == nil {
		return
	}
	entry := models.AuditLog{
		UserID:     userID,
		Action:     action,
		TargetType: "COLABORADOR",
		TargetID:   targetID,
		Timestamp:  time.Now().UTC(),
		Details:    details,
	}
	if err := s.auditService.CreateAuditLog(ctx, entry); err != nil {
		s.logger.Warn("failed to create audit log",
			zap.String("action", action),
			zap.String("targetId", targetID),
			zap.Error(err),
		)
	}
}

func updateKeys(updates map[string]interface{}) []string {
	keys := make([]string, 0, len(updates))
	for k := range updates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
