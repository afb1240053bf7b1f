package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pdv-backend-go/internal/models"
)

func seedColaborador(id, nome, email, cargo, departamento string, status models.StatusColaborador) *models.Colaborador {
	return &models.Colaborador{
		ID:           id,
		Nome:         nome,
		Email:        email,
		Cargo:        cargo,
		Departamento: departamento,
		DataAdmissao: "2024-01-15",
		Status:       status,
		Permissoes:   []models.Permissao{},
	}
}

type colaboradorFixture struct {
	repo     *memColaboradorRepo
	users    *memUserRepo
	accounts *stubAuthAccounts
	mail     *stubMailService
	audit    *stubAuditService
	service  ColaboradorService
}

func newColaboradorFixture(seed ...*models.Colaborador) *colaboradorFixture {
	f := &colaboradorFixture{
		repo:     newMemColaboradorRepo(seed...),
		users:    newMemUserRepo(),
		accounts: newStubAuthAccounts(),
		mail:     &stubMailService{},
		audit:    &stubAuditService{},
	}
	f.service = NewColaboradorService(f.repo, f.users, f.accounts, f.mail, f.audit, nil, zap.NewNop())
	return f
}

func validCreateRequest() models.CreateColaboradorRequest {
	return models.CreateColaboradorRequest{
		Nome:         "Maria Silva",
		Email:        "maria@empresa.com",
		Telefone:     "11999998888",
		Cargo:        "Gerente",
		Departamento: "Vendas",
		DataAdmissao: "2024-03-01",
		Status:       models.StatusAtivo,
	}
}

func TestCreateWithAccountProvisionsEverything(t *testing.T) {
	f := newColaboradorFixture()

	created, err := f.service.CreateWithAccount(context.Background(), "admin-1", validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "uid-1", created.ID)
	assert.Equal(t, "(11) 99999-8888", created.Telefone, "phone stored masked")
	assert.Equal(t, "admin-1", created.CriadoPor)
	assert.Empty(t, created.Permissoes)

	user, err := f.users.GetByID(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.True(t, user.IsFirstLogin)
	assert.Equal(t, models.RoleColaborador, user.Role)
	assert.Equal(t, "uid-1", user.ColaboradorID)

	require.Len(t, f.mail.sent, 1)
	assert.Equal(t, "welcome", f.mail.sent[0].kind)
	assert.Equal(t, "maria@empresa.com", f.mail.sent[0].to)
	assert.NotEmpty(t, f.mail.sent[0].payload, "welcome email carries the temporary password")

	assert.Contains(t, f.audit.actions(), "COLABORADOR_CREATE")
}

func TestCreateWithAccountRejectsDuplicateEmailBeforeAccountCreation(t *testing.T) {
	f := newColaboradorFixture(
		seedColaborador("c1", "João", "maria@empresa.com", "Caixa", "Vendas", models.StatusAtivo),
	)

	_, err := f.service.CreateWithAccount(context.Background(), "admin-1", validCreateRequest())
	require.ErrorIs(t, err, ErrEmailConflict)

	assert.Empty(t, f.accounts.created, "no auth account may exist for a rejected email")
	assert.Empty(t, f.mail.sent)

	all, _ := f.repo.GetAll(context.Background())
	assert.Len(t, all, 1, "collection unchanged")
}

func TestCreateWithAccountValidatesFields(t *testing.T) {
	f := newColaboradorFixture()

	req := validCreateRequest()
	req.Nome = ""
	req.Email = "not-an-email"
	req.Telefone = "123"
	req.Status = "ferias"

	_, err := f.service.CreateWithAccount(context.Background(), "admin-1", req)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "nome")
	assert.Contains(t, validationErr.Fields, "email")
	assert.Contains(t, validationErr.Fields, "telefone")
	assert.Contains(t, validationErr.Fields, "status")
	assert.Empty(t, f.accounts.created)
}

func TestCreateWithAccountCompensatesOnDocumentWriteFailure(t *testing.T) {
	f := newColaboradorFixture()
	f.repo.failCreate = true

	_, err := f.service.CreateWithAccount(context.Background(), "admin-1", validCreateRequest())
	require.Error(t, err)

	require.Len(t, f.accounts.created, 1)
	assert.Equal(t, f.accounts.created, f.accounts.deleted, "orphaned auth account must be deleted")
	assert.Empty(t, f.mail.sent)
}

func TestCreateWithAccountCompensatesOnUserProfileWriteFailure(t *testing.T) {
	f := newColaboradorFixture()
	f.users.failCreate = true

	_, err := f.service.CreateWithAccount(context.Background(), "admin-1", validCreateRequest())
	require.Error(t, err)
	assert.Equal(t, f.accounts.created, f.accounts.deleted)
}

func TestCreateWithAccountKeepsRecordWhenWelcomeEmailFails(t *testing.T) {
	f := newColaboradorFixture()
	f.mail.fail = true

	created, err := f.service.CreateWithAccount(context.Background(), "admin-1", validCreateRequest())
	require.NoError(t, err, "email failure must not block provisioning")

	_, err = f.service.GetByID(context.Background(), created.ID)
	assert.NoError(t, err)
	assert.Empty(t, f.accounts.deleted)
}

func TestCreateWithAccountTranslatesProviderErrors(t *testing.T) {
	f := newColaboradorFixture()
	f.accounts.failCreate = errors.New("EMAIL_EXISTS: already registered")

	_, err := f.service.CreateWithAccount(context.Background(), "admin-1", validCreateRequest())

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "Este email já está sendo usado por outro usuário no sistema.", remoteErr.Message)
}

func TestListAppliesFiltersAsConjunction(t *testing.T) {
	f := newColaboradorFixture(
		seedColaborador("c1", "Ana", "ana@empresa.com", "Gerente", "Vendas", models.StatusAtivo),
		seedColaborador("c2", "Bruno", "bruno@empresa.com", "Caixa", "Vendas", models.StatusAtivo),
		seedColaborador("c3", "Carla", "carla@empresa.com", "Gerente", "Financeiro", models.StatusAtivo),
		seedColaborador("c4", "Diego", "diego@empresa.com", "Gerente", "Vendas", models.StatusInativo),
	)

	page, err := f.service.List(context.Background(), ListColaboradoresQuery{
		Status:       string(models.StatusAtivo),
		Departamento: "Vendas",
		Cargo:        "Gerente",
		Page:         1,
	})
	require.NoError(t, err)

	require.Len(t, page.Items, 1, "only records matching every predicate survive")
	assert.Equal(t, "Ana", page.Items[0].Nome)
	assert.Equal(t, 1, page.Total)
}

func TestListFreeTextSearchesNomeEmailAndCargo(t *testing.T) {
	f := newColaboradorFixture(
		seedColaborador("c1", "Ana", "ana@empresa.com", "Gerente", "Vendas", models.StatusAtivo),
		seedColaborador("c2", "Bruno", "bruno@empresa.com", "Caixa", "Vendas", models.StatusAtivo),
		seedColaborador("c3", "Carla", "gerencia@empresa.com", "Analista", "RH", models.StatusAtivo),
	)

	page, err := f.service.List(context.Background(), ListColaboradoresQuery{Busca: "GEREN", Page: 1})
	require.NoError(t, err)

	require.Len(t, page.Items, 2, "term matches cargo of Ana and email of Carla, case-insensitive")
	assert.Equal(t, "Ana", page.Items[0].Nome)
	assert.Equal(t, "Carla", page.Items[1].Nome)
}

func TestListSortsWithPortugueseCollation(t *testing.T) {
	f := newColaboradorFixture(
		seedColaborador("c1", "Carlos", "carlos@empresa.com", "Caixa", "Vendas", models.StatusAtivo),
		seedColaborador("c2", "Álvaro", "alvaro@empresa.com", "Caixa", "Vendas", models.StatusAtivo),
		seedColaborador("c3", "Bruna", "bruna@empresa.com", "Caixa", "Vendas", models.StatusAtivo),
	)

	page, err := f.service.List(context.Background(), ListColaboradoresQuery{Page: 1})
	require.NoError(t, err)

	names := []string{page.Items[0].Nome, page.Items[1].Nome, page.Items[2].Nome}
	assert.Equal(t, []string{"Álvaro", "Bruna", "Carlos"}, names, "accented names sort with their base letter")
}

func TestListPaginates(t *testing.T) {
	seed := make([]*models.Colaborador, 0, 15)
	for i := 0; i < 15; i++ {
		id := fmt.Sprintf("c%02d", i)
		nome := fmt.Sprintf("Nome %02d", i)
		email := fmt.Sprintf("n%02d@empresa.com", i)
		seed = append(seed, seedColaborador(id, nome, email, "Caixa", "Vendas", models.StatusAtivo))
	}
	f := newColaboradorFixture(seed...)

	first, err := f.service.List(context.Background(), ListColaboradoresQuery{Page: 1})
	require.NoError(t, err)
	assert.Len(t, first.Items, PageSize)
	assert.Equal(t, 15, first.Total)
	assert.Equal(t, 2, first.TotalPages)

	second, err := f.service.List(context.Background(), ListColaboradoresQuery{Page: 2})
	require.NoError(t, err)
	assert.Len(t, second.Items, 5)

	beyond, err := f.service.List(context.Background(), ListColaboradoresQuery{Page: 9})
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, 15, beyond.Total)

	clamped, err := f.service.List(context.Background(), ListColaboradoresQuery{Page: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, clamped.Page)
	assert.Len(t, clamped.Items, PageSize)
}

func TestListDerivesOptionListsFromWorkingSet(t *testing.T) {
	f := newColaboradorFixture(
		seedColaborador("c1", "Ana", "ana@empresa.com", "Gerente", "Vendas", models.StatusAtivo),
		seedColaborador("c2", "Bruno", "bruno@empresa.com", "Caixa", "Financeiro", models.StatusAtivo),
		seedColaborador("c3", "Carla", "carla@empresa.com", "Caixa", "Vendas", models.StatusInativo),
	)

	// Option lists reflect the full working set even when the text filter
	// narrows the visible page.
	page, err := f.service.List(context.Background(), ListColaboradoresQuery{Busca: "Ana", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Financeiro", "Vendas"}, page.Departamentos)
	assert.Equal(t, []string{"Caixa", "Gerente"}, page.Cargos)

	// A specific status narrows the working set and therefore the options.
	page, err = f.service.List(context.Background(), ListColaboradoresQuery{Status: string(models.StatusInativo), Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Vendas"}, page.Departamentos)
	assert.Equal(t, []string{"Caixa"}, page.Cargos)
}

func TestListUsesAndInvalidatesDirectoryCache(t *testing.T) {
	f := newColaboradorFixture(
		seedColaborador("c1", "Ana", "ana@empresa.com", "Gerente", "Vendas", models.StatusAtivo),
	)
	cache := newMemCache()
	f.service = NewColaboradorService(f.repo, f.users, f.accounts, f.mail, f.audit, cache, zap.NewNop())

	_, err := f.service.List(context.Background(), ListColaboradoresQuery{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 0, cache.hits, "first load misses and fills the cache")
	assert.Contains(t, cache.entries, "colaboradores:all")

	page, err := f.service.List(context.Background(), ListColaboradoresQuery{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits, "second load is served from the cache")
	assert.Equal(t, 1, page.Total)

	nome := "Ana Paula"
	_, err = f.service.Update(context.Background(), "c1", models.UpdateColaboradorRequest{Nome: &nome})
	require.NoError(t, err)
	assert.NotContains(t, cache.entries, "colaboradores:all", "mutation drops the cached working sets")

	page, err = f.service.List(context.Background(), ListColaboradoresQuery{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, "Ana Paula", page.Items[0].Nome, "stale data is never served after a mutation")
}

func TestListRejectsUnknownStatus(t *testing.T) {
	f := newColaboradorFixture()

	_, err := f.service.List(context.Background(), ListColaboradoresQuery{Status: "ferias", Page: 1})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "status")
}

func TestUpdateStatusChangeSendsNotification(t *testing.T) {
	f := newColaboradorFixture(
		seedColaborador("c1", "Ana", "ana@empresa.com", "Gerente", "Vendas", models.StatusAtivo),
	)

	newStatus := models.StatusSuspenso
	updated, err := f.service.Update(context.Background(), "c1", models.UpdateColaboradorRequest{Status: &newStatus})
	require.NoError(t, err)
	assert.Equal(t, models.StatusSuspenso, updated.Status)

	require.Len(t, f.mail.sent, 1)
	assert.Equal(t, "status_change", f.mail.sent[0].kind)
	assert.Equal(t, string(models.StatusSuspenso), f.mail.sent[0].payload)
}

func TestUpdateSameStatusSendsNoNotification(t *testing.T) {
	f := newColaboradorFixture(
		seedColaborador("c1", "Ana", "ana@empresa.com", "Gerente", "Vendas", models.StatusAtivo),
	)

	same := models.StatusAtivo
	_, err := f.service.Update(context.Background(), "c1", models.UpdateColaboradorRequest{Status: &same})
	require.NoError(t, err)
	assert.Empty(t, f.mail.sent)
}

func TestUpdateEmailChecksUniquenessExcludingSelf(t *testing.T) {
	f := newColaboradorFixture(
		seedColaborador("c1", "Ana", "ana@empresa.com", "Gerente", "Vendas", models.StatusAtivo),
		seedColaborador("c2", "Bruno", "bruno@empresa.com", "Caixa", "Vendas", models.StatusAtivo),
	)

	taken := "bruno@empresa.com"
	_, err := f.service.Update(context.Background(), "c1", models.UpdateColaboradorRequest{Email: &taken})
	require.ErrorIs(t, err, ErrEmailConflict)

	// Re-submitting the current email is not a conflict.
	own := "ana@empresa.com"
	_, err = f.service.Update(context.Background(), "c1", models.UpdateColaboradorRequest{Email: &own})
	assert.NoError(t, err)
}

func TestUpdateUnknownColaborador(t *testing.T) {
	f := newColaboradorFixture()

	nome := "Novo Nome"
	_, err := f.service.Update(context.Background(), "missing", models.UpdateColaboradorRequest{Nome: &nome})
	assert.ErrorIs(t, err, ErrColaboradorNotFound)
}

func TestDeleteRemovesDocumentAndAccount(t *testing.T) {
	f := newColaboradorFixture(
		seedColaborador("c1", "Ana", "ana@empresa.com", "Gerente", "Vendas", models.StatusAtivo),
	)

	require.NoError(t, f.service.Delete(context.Background(), "c1"))

	_, err := f.service.GetByID(context.Background(), "c1")
	assert.ErrorIs(t, err, ErrColaboradorNotFound)
	assert.Equal(t, []string{"c1"}, f.accounts.deleted)
	assert.Contains(t, f.audit.actions(), "COLABORADOR_DELETE")
}

func TestUpdatePermissoesPersistsList(t *testing.T) {
	f := newColaboradorFixture(
		seedColaborador("c1", "Ana", "ana@empresa.com", "Gerente", "Vendas", models.StatusAtivo),
	)

	permissoes := []models.Permissao{
		{Modulo: models.ModuloCaixa, Visualizar: true, Criar: true},
		{Modulo: models.ModuloEstoque, Visualizar: true},
	}
	updated, err := f.service.UpdatePermissoes(context.Background(), "c1", permissoes)
	require.NoError(t, err)
	assert.Equal(t, permissoes, updated.Permissoes)

	reloaded, err := f.service.GetByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, permissoes, reloaded.Permissoes, "permission changes survive a reload")
}

func TestTogglePermissaoAppendsSingleFlagEntry(t *testing.T) {
	f := newColaboradorFixture(
		seedColaborador("c1", "Ana", "ana@empresa.com", "Gerente", "Vendas", models.StatusAtivo),
	)

	updated, err := f.service.TogglePermissao(context.Background(), "c1", models.ModuloCaixa, FlagCriar, true)
	require.NoError(t, err)

	require.Len(t, updated.Permissoes, 1)
	assert.Equal(t, models.Permissao{
		Modulo:     models.ModuloCaixa,
		Visualizar: false,
		Criar:      true,
		Editar:     false,
		Excluir:    false,
	}, updated.Permissoes[0])

	// Toggling another flag on the same module mutates the entry in place.
	updated, err = f.service.TogglePermissao(context.Background(), "c1", models.ModuloCaixa, FlagVisualizar, true)
	require.NoError(t, err)
	require.Len(t, updated.Permissoes, 1)
	assert.True(t, updated.Permissoes[0].Criar)
	assert.True(t, updated.Permissoes[0].Visualizar)
}

func TestTogglePermissaoRejectsUnknownModuleOrFlag(t *testing.T) {
	f := newColaboradorFixture(
		seedColaborador("c1", "Ana", "ana@empresa.com", "Gerente", "Vendas", models.StatusAtivo),
	)

	_, err := f.service.TogglePermissao(context.Background(), "c1", "faturamento", FlagCriar, true)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "modulo")

	_, err = f.service.TogglePermissao(context.Background(), "c1", models.ModuloCaixa, "aprovar", true)
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "flag")
}

func TestUpdatePermissoesRejectsUnknownAndDuplicateModules(t *testing.T) {
	f := newColaboradorFixture(
		seedColaborador("c1", "Ana", "ana@empresa.com", "Gerente", "Vendas", models.StatusAtivo),
	)

	_, err := f.service.UpdatePermissoes(context.Background(), "c1", []models.Permissao{{Modulo: "faturamento"}})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	_, err = f.service.UpdatePermissoes(context.Background(), "c1", []models.Permissao{
		{Modulo: models.ModuloCaixa},
		{Modulo: models.ModuloCaixa, Criar: true},
	})
	require.ErrorAs(t, err, &validationErr)
}
