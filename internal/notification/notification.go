package notification

import (
	"encoding/gob"
	"fmt"
	"sync"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"
)

const (
	VariantDefault     = "default"
	VariantDestructive = "destructive"

	flashKey = "notifications"
)

type Notification struct {
	ID          string
	Title       string
	Description string
	Variant     string
}

func init() {
	// flashes are gob encoded into the session cookie
	gob.Register(Notification{})
}

type Notifier interface {
	Notify(n Notification)
}

func New(title, description, variant string) Notification {
	return Notification{
		ID:          ksuid.New().String(),
		Title:       title,
		Description: description,
		Variant:     variant,
	}
}

func ProfileViewed(name string) Notification {
	return New("Perfil do Candidato", fmt.Sprintf("Visualizando perfil completo de %s", name), VariantDefault)
}

func InterviewScheduled(name string) Notification {
	return New("Entrevista Agendada", fmt.Sprintf("Entrevista com %s foi agendada com sucesso!", name), VariantDefault)
}

func FetchFailed() Notification {
	return New("Erro ao carregar candidatos", "Não foi possível carregar a lista de candidatos. Tente novamente mais tarde.", VariantDestructive)
}

// SessionNotifier queues notifications as session flashes. The caller is
// responsible for saving the session.
type SessionNotifier struct {
	session *sessions.Session
}

func NewSessionNotifier(session *sessions.Session) SessionNotifier {
	return SessionNotifier{session: session}
}

func (n SessionNotifier) Notify(x Notification) {
	n.session.AddFlash(x, flashKey)
}

// Drain pops every queued notification from the session, oldest first.
func Drain(session *sessions.Session) []Notification {
	flashes := session.Flashes(flashKey)
	out := make([]Notification, 0, len(flashes))
	for _, f := range flashes {
		if n, ok := f.(Notification); ok {
			out = append(out, n)
		}
	}
	return out
}

// LogNotifier writes notifications to the local log. Used where no browser
// session is around to show them, such as the fetch issued at startup.
type LogNotifier struct {
	Logger zerolog.Logger
}

func (n LogNotifier) Notify(x Notification) {
	ev := n.Logger.Info()
	if x.Variant == VariantDestructive {
		ev = n.Logger.Warn()
	}
	ev.Str("id", x.ID).Str("title", x.Title).Msg(x.Description)
}

// Buffer keeps notifications in memory.
type Buffer struct {
	mu    sync.Mutex
	items []Notification
}

func (b *Buffer) Notify(x Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, x)
}

func (b *Buffer) Items() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Notification, len(b.items))
	copy(out, b.items)
	return out
}
