package bootstrap

import (
	"fmt"

	"codebenders/internal/config"
	"codebenders/internal/controller"
	"codebenders/internal/pkg/logger"
	"codebenders/internal/pkg/mailer"
	"codebenders/internal/pkg/serverutils"
	"codebenders/internal/repository/memory"
	"codebenders/internal/service"
	"codebenders/pkg/events"
	"codebenders/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
)

type Container struct {
	// Controllers
	HealthController    controller.IHealthController
	AuthController      controller.IAuthController
	UserController      controller.IUserController
	ProjectController   controller.IProjectController
	WorkspaceController controller.IWorkspaceController

	// Auth guard shared by every protected route
	AuthMiddleware fiber.Handler

	// Exposed for main.go
	AuthService     service.IAuthService
	ConsumerService service.IConsumerService
	Logger          logger.ILogger

	pubSub *gochannel.GoChannel
}

// NewContainer wires the dev server. All state lives in memory, so every
// restart begins with only the seeded user.
func NewContainer(cfg *config.Config, log logger.ILogger) (*Container, error) {
	// 1. Repositories
	users := memory.NewUserRepository()
	tokens := memory.NewTokenRepository()
	projects := memory.NewProjectRepository()
	workspaces := memory.NewWorkspaceRepository(cfg.App.WorkspaceTTL)

	// 2. Event bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.App.ClientURL,
		log,
	)

	// 3. LLM
	baseURL := cfg.Ai.LLMBaseURL
	if cfg.Ai.LLMProvider == "ollama" {
		baseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(cfg.Ai.LLMProvider, cfg.Ai.LLMModel, baseURL, cfg.Ai.LLMAPIKey)
	if err != nil {
		return nil, fmt.Errorf("init llm provider: %w", err)
	}
	log.Info("bootstrap", "LLM provider ready", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    llmProvider.Model(),
	})

	// 4. Services
	jwtManager := serverutils.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)

	projectService := service.NewProjectService(projects, workspaces, log)
	authService := service.NewAuthService(users, tokens, jwtManager, pubSub, cfg.Auth.ResetTokenTTL, cfg.Auth.VerifyTokenTTL, log)
	userService := service.NewUserService(users, projectService, log)
	workspaceService := service.NewWorkspaceService(workspaces, projectService, llmProvider, cfg.Ai.Temperature, cfg.Ai.MaxTokens, log)
	consumerService := service.NewConsumerService(pubSub, events.MailTopic, emailService, log)

	// 5. Controllers
	return &Container{
		HealthController:    controller.NewHealthController(),
		AuthController:      controller.NewAuthController(authService),
		UserController:      controller.NewUserController(userService),
		ProjectController:   controller.NewProjectController(projectService),
		WorkspaceController: controller.NewWorkspaceController(workspaceService),

		AuthMiddleware: serverutils.JwtMiddleware(jwtManager, tokens.IsRevoked),

		AuthService:     authService,
		ConsumerService: consumerService,
		Logger:          log,

		pubSub: pubSub,
	}, nil
}

// Close stops the event bus.
func (c *Container) Close() error {
	return c.pubSub.Close()
}
