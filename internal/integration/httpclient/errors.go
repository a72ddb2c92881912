package httpclient

import (
	"errors"
	"fmt"
)

// ErrDegraded indica que a chamada nem foi feita porque o backend já está marcado como fora
var ErrDegraded = errors.New("backend degraded: request skipped")

type Kind int

const (
	KindTransport   Kind = iota // DNS, conexão, timeout
	KindShape                   // HTML no lugar de JSON
	KindUnavailable             // 502/503/504
	KindStatus                  // demais status fora de 2xx
	KindDecode                  // JSON que não bate com o tipo esperado
	KindCanceled                // contexto cancelado pelo chamador
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindShape:
		return "shape"
	case KindUnavailable:
		return "unavailable"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Error é a falha classificada de uma chamada ao backend
type Error struct {
	Kind   Kind
	Status int
	Path   string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Kind, e.Path, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s %s: http %d", e.Kind, e.Path, e.Status)
	default:
		return fmt.Sprintf("%s %s", e.Kind, e.Path)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Degrades informa se a falha derruba o backend inteiro ou só a chamada
func (e *Error) Degrades() bool {
	return e.Kind == KindTransport || e.Kind == KindShape || e.Kind == KindUnavailable
}

// Reason devolve um rótulo curto para logs e métricas
func Reason(err error) string {
	if errors.Is(err, ErrDegraded) {
		return "degraded"
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind.String()
	}
	return "unknown"
}
