package core

import "pdv-backend-go/internal/models"

// PermissaoFlag identifies one of the four independent permission flags.
type PermissaoFlag string

const (
	FlagVisualizar PermissaoFlag = "visualizar"
	FlagCriar      PermissaoFlag = "criar"
	FlagEditar     PermissaoFlag = "editar"
	FlagExcluir    PermissaoFlag = "excluir"
)

// Valid reports whether the flag is one of the known permission flags.
func (f PermissaoFlag) Valid() bool {
	switch f {
	case FlagVisualizar, FlagCriar, FlagEditar, FlagExcluir:
		return true
	}
	return false
}

// UpsertPermissao sets one flag for the module in the permission list. When
// the module already has an entry, only that flag changes; otherwise a new
// entry is appended with every other flag false. The result keeps at most one
// entry per module.
func UpsertPermissao(permissoes []models.Permissao, modulo models.ModuloSistema, flag PermissaoFlag, value bool) []models.Permissao {
	for i := range permissoes {
		if permissoes[i].Modulo == modulo {
			setFlag(&permissoes[i], flag, value)
			return permissoes
		}
	}
	p := models.Permissao{Modulo: modulo}
	setFlag(&p, flag, value)
	return append(permissoes, p)
}

// PermissaoFor returns the permission entry for the module, or an all-false
// entry when the module has none yet.
func PermissaoFor(permissoes []models.Permissao, modulo models.ModuloSistema) models.Permissao {
	for _, p := range permissoes {
		if p.Modulo == modulo {
			return p
		}
	}
	return models.Permissao{Modulo: modulo}
}

func setFlag(p *models.Permissao, flag PermissaoFlag, value bool) {
	switch flag {
	case FlagVisualizar:
		p.Visualizar = value
	case FlagCriar:
		p.Criar = value
	case FlagEditar:
		p.Editar = value
	case FlagExcluir:
		p.Excluir = value
	}
}

// validatePermissoes checks each entry against the closed module enumeration
// and rejects duplicate modules.
func validatePermissoes(permissoes []models.Permissao) map[string]string {
	fields := map[string]string{}
	seen := map[models.ModuloSistema]bool{}
	for _, p := range permissoes {
		if !p.Modulo.Valid() {
			fields["permissoes"] = "Módulo desconhecido: " + string(p.Modulo)
			return fields
		}
		if seen[p.Modulo] {
			fields["permissoes"] = "Módulo duplicado na lista de permissões: " + string(p.Modulo)
			return fields
		}
		seen[p.Modulo] = true
	}
	return fields
}
