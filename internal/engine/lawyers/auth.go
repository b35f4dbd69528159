package lawyers

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/brunolandim/back-jurix/internal/pkg/errors"
	"github.com/brunolandim/back-jurix/internal/platform/models"
)

const resetCodeTTL = time.Hour

// TokenIssuer mints access tokens after a successful login.
type TokenIssuer interface {
	GenerateToken(lawyerID, organizationID, role string) (string, error)
}

// EmailSender delivers the password-reset email.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// AuthService carries the public authentication flows: login, profile and
// the password-reset round trip.
type AuthService struct {
	store  Store
	tokens TokenIssuer
	email  EmailSender
	appURL string
}

func NewAuthService(store Store, tokens TokenIssuer, email EmailSender, appURL string) *AuthService {
	return &AuthService{store: store, tokens: tokens, email: email, appURL: appURL}
}

type LoginResult struct {
	Token  string               `json:"token"`
	Lawyer *models.PublicLawyer `json:"lawyer"`
}

func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	lawyer, err := s.store.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if lawyer == nil {
		return nil, errors.Unauthorized("Invalid email or password")
	}
	if !lawyer.Active {
		return nil, errors.Unauthorized("Account is inactive")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(lawyer.PasswordHash), []byte(password)); err != nil {
		return nil, errors.Unauthorized("Invalid email or password")
	}

	token, err := s.tokens.GenerateToken(lawyer.ID, lawyer.OrganizationID, lawyer.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, Lawyer: models.ToPublicLawyer(lawyer)}, nil
}

func (s *AuthService) GetMe(lawyerID string) (*models.PublicLawyer, error) {
	lawyer, err := s.store.FindByID(lawyerID)
	if err != nil {
		return nil, err
	}
	if lawyer == nil {
		return nil, errors.NotFound("Lawyer", lawyerID)
	}
	return models.ToPublicLawyer(lawyer), nil
}

func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// ForgotPassword issues a short-lived reset code and emails it. Unknown
// emails are a silent no-op so the endpoint never leaks which addresses
// exist.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	lawyer, err := s.store.FindByEmail(email)
	if err != nil {
		return err
	}
	if lawyer == nil {
		return nil
	}

	code, err := generateResetCode()
	if err != nil {
		return err
	}
	expires := time.Now().Add(resetCodeTTL).Unix()

	if err := s.store.SetResetCode(lawyer.ID, &code, &expires); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/auth/reset-password?code=%s", s.appURL, code)
	body := BuildPasswordResetEmail(resetURL)
	if err := s.email.Send(ctx, lawyer.Email, "Redefinição de senha - Jurix", body); err != nil {
		// The code is stored; the user can retry the email.
		log.Error().Err(err).Str("lawyer", lawyer.ID).Msg("password reset email failed")
	}
	return nil
}

func (s *AuthService) ResetPassword(email, code, newPassword string) error {
	if len(newPassword) < PasswordMinLength {
		return errors.Validation("Password must be at least 8 characters")
	}

	lawyer, err := s.store.FindByEmailAndResetCode(email, code, time.Now().Unix())
	if err != nil {
		return err
	}
	if lawyer == nil {
		return errors.Unauthorized("Código inválido ou expirado")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	lawyer.PasswordHash = string(hash)
	lawyer.UpdatedAt = time.Now().Unix()
	if err := s.store.Update(lawyer); err != nil {
		return err
	}

	return s.store.SetResetCode(lawyer.ID, nil, nil)
}

// BuildPasswordResetEmail renders the reset email in the product's standard
// layout.
func BuildPasswordResetEmail(resetURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="pt-BR">
<head><meta charset="UTF-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"></head>
<body style="margin:0;padding:0;background:#f4f4f5;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="background:#f4f4f5;padding:32px 16px;">
    <tr><td align="center">
      <table width="600" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:12px;overflow:hidden;">
        <tr><td style="background:#18181b;padding:24px 32px;">
          <h1 style="margin:0;color:#ffffff;font-size:24px;font-weight:700;">Jurix</h1>
        </td></tr>
        <tr><td style="padding:32px;">
          <h2 style="margin:0 0 16px;color:#18181b;font-size:20px;">Redefinição de senha</h2>
          <p style="margin:0 0 24px;color:#3f3f46;font-size:15px;line-height:1.6;">
            Recebemos um pedido para redefinir a sua senha. O link abaixo é válido por 1 hora.
            Se você não fez este pedido, ignore este e-mail.
          </p>
          <a href="%s" style="display:inline-block;background:#18181b;color:#ffffff;padding:12px 24px;border-radius:8px;text-decoration:none;font-size:14px;font-weight:600;">
            Redefinir senha
          </a>
        </td></tr>
        <tr><td style="padding:16px 32px;background:#fafafa;border-top:1px solid #e4e4e7;">
          <p style="margin:0;color:#a1a1aa;font-size:12px;text-align:center;">
            Jurix - Sistema de Gestão Jurídica
          </p>
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`, resetURL)
}
