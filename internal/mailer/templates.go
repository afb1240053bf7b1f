package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"pdv-backend-go/internal/models"
)

// WelcomeEmailData feeds the welcome template sent right after provisioning.
type WelcomeEmailData struct {
	Email             string
	DisplayName       string
	TemporaryPassword string
	CompanyName       string
}

// PasswordResetEmailData feeds the password-reset template.
type PasswordResetEmailData struct {
	Email       string
	DisplayName string
	ResetLink   string
	CompanyName string
}

// StatusChangeEmailData feeds the status-change notification template.
type StatusChangeEmailData struct {
	Email       string
	DisplayName string
	NewStatus   models.StatusColaborador
	CompanyName string
}

const emailShellHeader = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; border-radius: 10px 10px 0 0; text-align: center;">
    <h1 style="margin: 0; font-size: 28px;">{{.HeaderTitle}}</h1>
    <p style="margin: 10px 0 0 0; font-size: 16px; opacity: 0.9;">{{.HeaderSubtitle}}</p>
  </div>
  <div style="background: white; padding: 30px; border: 1px solid #e0e0e0; border-top: none; border-radius: 0 0 10px 10px;">
    <h2 style="color: #333; margin-top: 0;">Olá, {{.DisplayName}}!</h2>`

const emailShellFooter = `
    <hr style="border: none; border-top: 1px solid #e0e0e0; margin: 30px 0;">
    <p style="color: #999; font-size: 12px; text-align: center; margin: 0;">
      Este é um email automático. Não responda a esta mensagem.
    </p>
  </div>
</div>`

var welcomeTemplate = template.Must(template.New("welcome").Parse(emailShellHeader + `
    <p style="color: #666; line-height: 1.6;">
      Seu acesso ao sistema <strong>{{.CompanyName}}</strong> foi criado com sucesso.
      Abaixo estão suas credenciais de acesso:
    </p>
    <div style="background: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 4px solid #667eea;">
      <h3 style="margin: 0 0 15px 0; color: #333;">Suas Credenciais</h3>
      <p style="margin: 5px 0; color: #666;"><strong>Email:</strong> {{.Email}}</p>
      <p style="margin: 5px 0; color: #666;"><strong>Senha temporária:</strong> <span style="background: #fff3cd; padding: 2px 6px; border-radius: 4px; font-family: monospace;">{{.TemporaryPassword}}</span></p>
    </div>
    <div style="background: #fff3cd; border: 1px solid #ffeaa7; padding: 15px; border-radius: 8px; margin: 20px 0;">
      <h4 style="margin: 0 0 10px 0; color: #856404;">Importante</h4>
      <p style="margin: 0; color: #856404; font-size: 14px;">
        Por segurança, você será obrigado a trocar sua senha no primeiro acesso ao sistema.
      </p>
    </div>` + emailShellFooter))

var passwordResetTemplate = template.Must(template.New("passwordReset").Parse(emailShellHeader + `
    <p style="color: #666; line-height: 1.6;">
      Recebemos uma solicitação para redefinir sua senha no sistema <strong>{{.CompanyName}}</strong>.
    </p>
    <div style="text-align: center; margin: 30px 0;">
      <a href="{{.ResetLink}}" style="background: #667eea; color: white; padding: 12px 30px; text-decoration: none; border-radius: 6px; display: inline-block; font-weight: bold;">
        Redefinir Senha
      </a>
    </div>
    <div style="background: #fff3cd; border: 1px solid #ffeaa7; padding: 15px; border-radius: 8px; margin: 20px 0;">
      <h4 style="margin: 0 0 10px 0; color: #856404;">Segurança</h4>
      <p style="margin: 0; color: #856404; font-size: 14px;">
        Este link é válido por 1 hora. Se você não solicitou esta alteração, ignore este email.
      </p>
    </div>` + emailShellFooter))

var statusChangeTemplate = template.Must(template.New("statusChange").Parse(emailShellHeader + `
    <p style="color: #666; line-height: 1.6;">
      Seu status no sistema <strong>{{.CompanyName}}</strong> foi atualizado.
    </p>
    <div style="background: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 4px solid {{.StatusColor}}">
      <h3 style="margin: 0 0 15px 0; color: #333;">Novo Status</h3>
      <p style="margin: 0; color: #666;">
        <strong>Status:</strong>
        <span style="background: {{.StatusColor}}; color: white; padding: 4px 8px; border-radius: 4px; font-size: 12px;">
          {{.StatusLabel}}
        </span>
      </p>
    </div>` + emailShellFooter))

type templateContext struct {
	HeaderTitle       string
	HeaderSubtitle    string
	DisplayName       string
	Email             string
	CompanyName       string
	TemporaryPassword string
	ResetLink         string
	StatusLabel       string
	StatusColor       template.CSS
}

// RenderWelcome renders the welcome message with the temporary credentials.
func RenderWelcome(data WelcomeEmailData) (Message, error) {
	var buf bytes.Buffer
	err := welcomeTemplate.Execute(&buf, templateContext{
		HeaderTitle:       "Bem-vindo!",
		HeaderSubtitle:    "Seu acesso foi criado com sucesso",
		DisplayName:       data.DisplayName,
		Email:             data.Email,
		CompanyName:       data.CompanyName,
		TemporaryPassword: data.TemporaryPassword,
	})
	if err != nil {
		return Message{}, fmt.Errorf("failed to render welcome email: %w", err)
	}
	return Message{
		To:      data.Email,
		Subject: fmt.Sprintf("Bem-vindo ao %s!", data.CompanyName),
		HTML:    buf.String(),
	}, nil
}

// RenderPasswordReset renders the password-reset notice with the reset link.
func RenderPasswordReset(data PasswordResetEmailData) (Message, error) {
	var buf bytes.Buffer
	err := passwordResetTemplate.Execute(&buf, templateContext{
		HeaderTitle:    "Reset de Senha",
		HeaderSubtitle: "Solicitação de nova senha",
		DisplayName:    data.DisplayName,
		CompanyName:    data.CompanyName,
		ResetLink:      data.ResetLink,
	})
	if err != nil {
		return Message{}, fmt.Errorf("failed to render password reset email: %w", err)
	}
	return Message{
		To:      data.Email,
		Subject: fmt.Sprintf("Reset de Senha - %s", data.CompanyName),
		HTML:    buf.String(),
	}, nil
}

// RenderStatusChange renders the status-change notice. The status maps to a
// display label and a color through the StatusColaborador enumeration.
func RenderStatusChange(data StatusChangeEmailData) (Message, error) {
	var buf bytes.Buffer
	err := statusChangeTemplate.Execute(&buf, templateContext{
		HeaderTitle:    "Status Atualizado",
		HeaderSubtitle: "Notificação de mudança de status",
		DisplayName:    data.DisplayName,
		CompanyName:    data.CompanyName,
		StatusLabel:    data.NewStatus.Label(),
		StatusColor:    template.CSS(data.NewStatus.Color()),
	})
	if err != nil {
		return Message{}, fmt.Errorf("failed to render status change email: %w", err)
	}
	return Message{
		To:      data.Email,
		Subject: fmt.Sprintf("Status Atualizado - %s", data.CompanyName),
		HTML:    buf.String(),
	}, nil
}
