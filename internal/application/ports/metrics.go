package ports

// AuthMetrics contadores de login.
type AuthMetrics interface {
	AuthAttempt(result string)
}

// ShiftMetrics contadores de apertura y cierre de turnos.
type ShiftMetrics interface {
	ShiftOpened()
	ShiftClosed(status string)
}

// NopMetrics no registra nada.
type NopMetrics struct{}

func (NopMetrics) AuthAttempt(string) {}
func (NopMetrics) ShiftOpened()       {}
func (NopMetrics) ShiftClosed(string) {}
