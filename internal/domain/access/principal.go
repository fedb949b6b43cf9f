// Package access contiene la resolución de tenant y la autorización por rol.
// Todo es explícito: el Principal y el Scope viajan como parámetros, nunca como estado global.
package access

import "github.com/acruxgo/banos-forum-backend/internal/domain/entity"

// Principal identidad autenticada de quien llama. Refleja la cuenta al momento de emitir el token.
type Principal struct {
	AccountID string
	Role      entity.Role
	TenantID  string // vacío para operadores
}

// IsOperator informa si el principal tiene el rol privilegiado entre negocios.
func (p Principal) IsOperator() bool {
	return p.Role == entity.RoleOperator
}
