package models

import "time"

// StatusColaborador is the closed set of lifecycle states a colaborador can be in.
type StatusColaborador string

const (
	StatusAtivo    StatusColaborador = "ativo"
	StatusInativo  StatusColaborador = "inativo"
	StatusSuspenso StatusColaborador = "suspenso"
)

// Valid reports whether the status is one of the known states.
func (s StatusColaborador) Valid() bool {
	switch s {
	case StatusAtivo, StatusInativo, StatusSuspenso:
		return true
	}
	return false
}

// Label returns the Portuguese display label for the status.
func (s StatusColaborador) Label() string {
	switch s {
	case StatusAtivo:
		return "Ativo"
	case StatusInativo:
		return "Inativo"
	case StatusSuspenso:
		return "Suspenso"
	}
	return string(s)
}

// Color returns the display color associated with the status, used by the
// status-change notification email.
func (s StatusColaborador) Color() string {
	switch s {
	case StatusAtivo:
		return "#28a745"
	case StatusInativo:
		return "#dc3545"
	case StatusSuspenso:
		return "#ffc107"
	}
	return "#6c757d"
}

// ModuloSistema identifies one of the fixed system sections that permissions
// are scoped to.
type ModuloSistema string

const (
	ModuloDashboard     ModuloSistema = "dashboard"
	ModuloAgendamentos  ModuloSistema = "agendamentos"
	ModuloEstoque       ModuloSistema = "estoque"
	ModuloCaixa         ModuloSistema = "caixa"
	ModuloClientes      ModuloSistema = "clientes"
	ModuloColaborador   ModuloSistema = "colaborador"
	ModuloConfiguracoes ModuloSistema = "configuracoes"
)

// Modulos lists every system module in display order.
var Modulos = []ModuloSistema{
	ModuloDashboard,
	ModuloAgendamentos,
	ModuloEstoque,
	ModuloCaixa,
	ModuloClientes,
	ModuloColaborador,
	ModuloConfiguracoes,
}

// Valid reports whether the module is one of the known system modules.
func (m ModuloSistema) Valid() bool {
	for _, known := range Modulos {
		if m == known {
			return true
		}
	}
	return false
}

// Permissao is the four-flag access grant a colaborador holds for one module.
// A colaborador owns at most one Permissao per module; upsert logic in the
// service layer enforces that.
type Permissao struct {
	Modulo     ModuloSistema `json:"modulo" firestore:"modulo"`
	Visualizar bool          `json:"visualizar" firestore:"visualizar"`
	Criar      bool          `json:"criar" firestore:"criar"`
	Editar     bool          `json:"editar" firestore:"editar"`
	Excluir    bool          `json:"excluir" firestore:"excluir"`
}

// Colaborador is a staff member record. The ID equals the Firebase Auth UID of
// the linked account, not the autogenerated Firestore document key; callers
// join on this field.
type Colaborador struct {
	ID           string            `json:"id" firestore:"id"`
	Nome         string            `json:"nome" firestore:"nome"`
	Email        string            `json:"email" firestore:"email"`
	Telefone     string            `json:"telefone,omitempty" firestore:"telefone"`
	Cargo        string            `json:"cargo" firestore:"cargo"`
	Departamento string            `json:"departamento" firestore:"departamento"`
	DataAdmissao string            `json:"dataAdmissao" firestore:"dataAdmissao"`
	Status       StatusColaborador `json:"status" firestore:"status"`
	Permissoes   []Permissao       `json:"permissoes" firestore:"permissoes"`
	Observacoes  string            `json:"observacoes,omitempty" firestore:"observacoes,omitempty"`
	CriadoPor    string            `json:"criadoPor" firestore:"criadoPor"`
	CreatedAt    time.Time         `json:"dataCriacao" firestore:"dataCriacao"`
	UpdatedAt    time.Time         `json:"dataUltimaAtualizacao" firestore:"dataUltimaAtualizacao"`
}
