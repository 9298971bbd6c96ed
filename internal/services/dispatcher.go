package services

import (
	"errors"
	"log/slog"
	"vendepass-client/internal/adapters/backend"
	"vendepass-client/internal/ports"
)

const (
	MsgGeneric       = "Ocorreu um erro, tente novamente."
	MsgNoRoute       = "Não foram encontradas rotas para o caminho desejado."
	MsgSameEndpoints = "Origem e destino devem ser diferentes."
	MsgMissingLogin  = "Preencha usuário e senha."
	MsgSessionEnded  = "Sessão expirada, faça login novamente."
	MsgUnreachable   = "Não foi possível contatar o servidor."
)

// Login failures shown to the user, keyed by backend reason.
var loginMessages = map[string]string{
	"client not found":          "Cliente não cadastrado",
	"invalid credentials":       "Credenciais inválidas",
	"more than one user logged": "Um dispositivo já está conectado com a conta.",
}

// Known reasons from the booking endpoints.
var domainMessages = map[string]string{
	"at least one flight is not available": "Pelo menos um voo não está mais disponível.",
	"reservation do not exists":            "Reserva não encontrada.",
	"ticket not found":                     "Passagem não encontrada.",
	"no route":                             MsgNoRoute,
	"not valid city name":                  "Cidade inválida.",
}

// ValidationError rejects input before any request is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// LoginMessage maps a login failure reason to its user-facing text.
func LoginMessage(reason string) string {
	if msg, ok := loginMessages[reason]; ok {
		return msg
	}
	return MsgGeneric
}

// Classify turns err into a Notice with a default message for its kind.
func Classify(err error) ports.Notice {
	var ve *ValidationError
	var de *backend.DomainError

	switch {
	case err == nil:
		return ports.Notice{Kind: ports.KindInfo}
	case errors.As(err, &ve):
		return ports.Notice{Kind: ports.KindValidation, Message: ve.Message, Err: err}
	case errors.Is(err, backend.ErrUnauthorized):
		return ports.Notice{Kind: ports.KindAuth, Message: MsgSessionEnded, Err: err}
	case errors.As(err, &de):
		msg, ok := domainMessages[de.Reason]
		if !ok {
			msg = MsgGeneric
		}
		return ports.Notice{Kind: ports.KindDomain, Message: msg, Err: err}
	default:
		return ports.Notice{Kind: ports.KindTransport, Message: MsgUnreachable, Err: err}
	}
}

// Dispatcher is the one path every user-facing notice goes through.
// It is safe for concurrent use if the wrapped Notifier is.
type Dispatcher struct {
	notifier ports.Notifier
	logger   *slog.Logger
}

func NewDispatcher(n ports.Notifier, logger *slog.Logger) *Dispatcher {
	if n == nil {
		n = ports.NotifierFunc(func(ports.Notice) {})
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{notifier: n, logger: logger}
}

// Info reports a successful action.
func (d *Dispatcher) Info(msg string) ports.Notice {
	return d.send(ports.Notice{Kind: ports.KindInfo, Message: msg})
}

func (d *Dispatcher) Validation(msg string) ports.Notice {
	return d.send(ports.Notice{Kind: ports.KindValidation, Message: msg, Err: &ValidationError{Message: msg}})
}

// Error classifies err and reports it. A nil err is ignored.
func (d *Dispatcher) Error(err error) ports.Notice {
	if err == nil {
		return ports.Notice{}
	}
	return d.send(Classify(err))
}

// LoginError reports a failed login using the login message table.
func (d *Dispatcher) LoginError(err error) ports.Notice {
	if err == nil {
		return ports.Notice{}
	}
	n := Classify(err)
	switch n.Kind {
	case ports.KindDomain:
		n.Message = LoginMessage(backend.Reason(err))
	case ports.KindTransport, ports.KindAuth:
		n.Message = MsgGeneric
	}
	return d.send(n)
}

// RouteError reports a failed route query. Auth failures keep their own
// message since the user is being signed out.
func (d *Dispatcher) RouteError(err error) ports.Notice {
	if err == nil {
		return ports.Notice{}
	}
	n := Classify(err)
	if n.Kind == ports.KindDomain || n.Kind == ports.KindTransport {
		n.Message = MsgNoRoute
	}
	return d.send(n)
}

func (d *Dispatcher) send(n ports.Notice) ports.Notice {
	switch n.Kind {
	case ports.KindInfo, ports.KindValidation:
		d.logger.Debug("notice", "kind", n.Kind.String(), "msg", n.Message)
	default:
		d.logger.Info("notice", "kind", n.Kind.String(), "msg", n.Message, "err", n.Err)
	}
	d.notifier.Notify(n)
	return n
}
