package access

type scopeKind uint8

const (
	kindInvalid scopeKind = iota
	kindScoped
	kindUnscoped
)

// Scope restricción de tenant de una petición: Scoped(tenantID) o Unscoped (solo operadores).
// El valor cero es inválido; los repositorios lo rechazan para que ninguna consulta
// sobre datos de negocio se ejecute sin alcance.
type Scope struct {
	kind     scopeKind
	tenantID string
}

// Scoped restringe al negocio indicado.
func Scoped(tenantID string) Scope {
	if tenantID == "" {
		return Scope{}
	}
	return Scope{kind: kindScoped, tenantID: tenantID}
}

// Unscoped sin restricción de negocio.
func Unscoped() Scope {
	return Scope{kind: kindUnscoped}
}

// Valid informa si el scope fue construido con Scoped o Unscoped.
func (s Scope) Valid() bool { return s.kind != kindInvalid }

// IsUnscoped informa si el scope no restringe por negocio.
func (s Scope) IsUnscoped() bool { return s.kind == kindUnscoped }

// TenantID devuelve el negocio del scope; ok=false si es Unscoped o inválido.
func (s Scope) TenantID() (string, bool) {
	if s.kind != kindScoped {
		return "", false
	}
	return s.tenantID, true
}

// Narrow permite a un operador acotar manualmente a un negocio.
// Un scope ya acotado nunca cambia de negocio.
func (s Scope) Narrow(tenantID string) Scope {
	if s.kind != kindUnscoped || tenantID == "" {
		return s
	}
	return Scoped(tenantID)
}

// Allows informa si una fila del negocio tenantID es visible dentro del scope.
func (s Scope) Allows(tenantID string) bool {
	switch s.kind {
	case kindUnscoped:
		return true
	case kindScoped:
		return s.tenantID == tenantID
	}
	return false
}

func (s Scope) String() string {
	switch s.kind {
	case kindScoped:
		return "scoped:" + s.tenantID
	case kindUnscoped:
		return "unscoped"
	}
	return "invalid"
}
