package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"codebenders/internal/dto"
	"codebenders/internal/pkg/logger"
	"codebenders/internal/pkg/serverutils"
	"codebenders/internal/repository/memory"
	"codebenders/pkg/events"
	"codebenders/pkg/llm"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.BaseEvent
}

func (p *recordingPublisher) Publish(topic string, msgs ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, msg := range msgs {
		e, err := events.Decode(msg)
		if err != nil {
			return err
		}
		p.events = append(p.events, e)
	}
	return nil
}

func (p *recordingPublisher) last(t *testing.T) events.BaseEvent {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	require.NotEmpty(t, p.events)
	return p.events[len(p.events)-1]
}

type fakeLLM struct {
	reply   string
	err     error
	history []llm.Message
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.history = history
	return f.reply, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func (f *fakeLLM) Model() string { return "fake-model" }

var errLLMDown = errors.New("connection refused")

type services struct {
	auth      IAuthService
	users     IUserService
	projects  IProjectService
	workspace IWorkspaceService
	publisher *recordingPublisher
	llm       *fakeLLM
	jwt       *serverutils.JWTManager
	userRepo  *memory.UserRepository
	tokenRepo *memory.TokenRepository
}

func newServices(t *testing.T) *services {
	t.Helper()
	log := logger.NewNopLogger()
	userRepo := memory.NewUserRepository()
	tokenRepo := memory.NewTokenRepository()
	projectRepo := memory.NewProjectRepository()
	workspaceRepo := memory.NewWorkspaceRepository(time.Hour)
	publisher := &recordingPublisher{}
	fake := &fakeLLM{reply: "```html\n<p>hi</p>\n```"}
	jwt := serverutils.NewJWTManager("test-secret", time.Hour)

	projects := NewProjectService(projectRepo, workspaceRepo, log)
	return &services{
		auth:      NewAuthService(userRepo, tokenRepo, jwt, publisher, time.Hour, 15*time.Minute, log),
		users:     NewUserService(userRepo, projects, log),
		projects:  projects,
		workspace: NewWorkspaceService(workspaceRepo, projects, fake, 0.2, 512, log),
		publisher: publisher,
		llm:       fake,
		jwt:       jwt,
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

func (s *services) register(t *testing.T, email string) uuid.UUID {
	t.Helper()
	user, err := s.auth.Register(context.Background(), &dto.RegisterRequest{Email: email, Password: "correct-horse", FullName: "Ada"})
	require.NoError(t, err)
	return uuid.MustParse(user.Id)
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
