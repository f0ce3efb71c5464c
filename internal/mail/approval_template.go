package mail

import (
	"bytes"
	"fmt"
	"html/template"
)

// ApprovalEmail is the data rendered into the account-approval email.
type ApprovalEmail struct {
	UserName string
	Product  string
	// Features is the product-specific capability list shown to the user.
	Features []string
}

var approvalTmpl = template.Must(template.New("approval").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Account Approved - {{.Product}}</title>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #4CAF50, #45a049); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
    .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
    .footer { text-align: center; margin-top: 30px; color: #666; font-size: 14px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>🎉 Welcome to {{.Product}}!</h1>
      <p>Your account has been approved and is now active</p>
    </div>
    <div class="content">
      <h2>Hello {{.UserName}}!</h2>
      <p>Great news! Your {{.Product}} account has been reviewed and approved by our team. You can now access all the features of the app.</p>

      <h3>What you can do now:</h3>
      <ul>
{{- range .Features}}
        <li>{{.}}</li>
{{- end}}
      </ul>

      <p>Simply log in to your account using the same credentials you used during registration to start using {{.Product}}.</p>

      <p><strong>Need help?</strong> If you have any questions or need assistance, feel free to contact our support team.</p>
    </div>
    <div class="footer">
      <p>Best regards,<br>The {{.Product}} Team</p>
      <p>This is an automated message. Please do not reply to this email.</p>
    </div>
  </div>
</body>
</html>
`))

// RenderApproval produces the approval email body. UserName falls back to
// "User" when the profile has no display name.
func RenderApproval(data ApprovalEmail) (string, error) {
	if data.UserName == "" {
		data.UserName = "User"
	}
	if len(data.Features) == 0 {
		data.Features = []string{
			"🔍 Scan for disease detection",
			"📊 View detailed analysis reports",
			"👨‍🌾 Get expert recommendations for treatment",
			"📱 Access your scan history and progress",
		}
	}
	var buf bytes.Buffer
	if err := approvalTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render approval email: %w", err)
	}
	return buf.String(), nil
}
