package commands

import (
	"fmt"
	"time"

	"github.com/hubverse/hub-services/internal/pkg/auth"
	"github.com/hubverse/hub-services/internal/pkg/config"
	"github.com/hubverse/hub-services/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
)

// TokenClaims is the printed form of a verified token.
type TokenClaims struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	Username  string    `json:"username,omitempty"`
	Role      string    `json:"role"`
	Issuer    string    `json:"issuer"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenCommandHandler issues and inspects access tokens with the shared JWT secret.
type TokenCommandHandler struct {
	logger logger.Logger
}

// NewTokenCommandHandler creates a TokenCommandHandler.
func NewTokenCommandHandler(logger logger.Logger) *TokenCommandHandler {
	return &TokenCommandHandler{logger: logger}
}

// tokenManager reads JWT_SECRET, JWT_ISSUER and JWT_TTL the same way the services do.
func (commandHandler *TokenCommandHandler) tokenManager() (*auth.TokenManager, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	settings := config.Default(config.ServiceCommunity).Auth
	if err := envconfig.Process("", &settings); err != nil {
		return nil, fmt.Errorf("failed to read auth settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return auth.NewTokenManager(settings.Secret, settings.Issuer, settings.TokenTTL)
}

// GenerateTokenCmd prints a signed access token for the given identity.
func (commandHandler *TokenCommandHandler) GenerateTokenCmd(cmd *cobra.Command, _ []string) error {
	userID, _ := cmd.Flags().GetString("user-id")
	email, _ := cmd.Flags().GetString("email")
	username, _ := cmd.Flags().GetString("username")
	role, _ := cmd.Flags().GetString("role")
	ttl, _ := cmd.Flags().GetDuration("ttl")

	if userID == "" {
		userID = uuid.NewString()
	} else if _, err := uuid.Parse(userID); err != nil {
		return fmt.Errorf("user id %q is not a UUID", userID)
	}
	if !auth.ValidRole(role) {
		return fmt.Errorf("unknown role %q", role)
	}

	manager, err := commandHandler.tokenManager()
	if err != nil {
		return err
	}

	principal := auth.Principal{UserID: userID, Email: email, Username: username, Role: role}

	var (
		token     string
		expiresAt time.Time
	)
	if ttl > 0 {
		token, expiresAt, err = manager.IssueWithTTL(principal, ttl)
	} else {
		token, expiresAt, err = manager.Issue(principal)
	}
	if err != nil {
		return err
	}

	commandHandler.logger.Info("Issued ", role, " token for ", userID, " expiring at ", expiresAt.Format(time.RFC3339))
	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}

// InspectTokenCmd verifies a token and prints its claims as JSON.
func (commandHandler *TokenCommandHandler) InspectTokenCmd(cmd *cobra.Command, args []string) error {
	manager, err := commandHandler.tokenManager()
	if err != nil {
		return err
	}

	claims, err := manager.Verify(args[0])
	if err != nil {
		return err
	}

	out := TokenClaims{
		ID:       claims.ID,
		UserID:   claims.UserID(),
		Email:    claims.Email,
		Username: claims.Username,
		Role:     claims.Role,
		Issuer:   claims.Issuer,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.UTC()
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.UTC()
	}
	return writeJSON(cmd, out)
}

// InitTokenCommands registers the token command group.
func InitTokenCommands(rootCmd *cobra.Command, logger logger.Logger) error {
	handler := NewTokenCommandHandler(logger)

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Issue and inspect access tokens",
	}

	var generateTokenCmd = &cobra.Command{
		Use:   "generate",
		Short: "Print a signed access token",
		Args:  cobra.NoArgs,
		RunE:  handler.GenerateTokenCmd,
	}
	generateTokenCmd.Flags().String("user-id", "", "Subject of the token (random UUID when empty)")
	generateTokenCmd.Flags().String("email", "", "Email claim")
	generateTokenCmd.Flags().String("username", "", "Username claim")
	generateTokenCmd.Flags().String("role", auth.RoleMember, "Role claim (member, moderator or admin)")
	generateTokenCmd.Flags().Duration("ttl", 0, "Token lifetime (defaults to JWT_TTL or 24h)")
	tokenCmd.AddCommand(generateTokenCmd)

	var inspectTokenCmd = &cobra.Command{
		Use:   "inspect <token>",
		Short: "Verify a token and print its claims",
		Args:  cobra.ExactArgs(1),
		RunE:  handler.InspectTokenCmd,
	}
	tokenCmd.AddCommand(inspectTokenCmd)

	rootCmd.AddCommand(tokenCmd)
	return nil
}
