package email

// BaseTemplate is the base layout for all emails
const BaseTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body {
            margin: 0;
            padding: 0;
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background-color: #f6f7fb;
            color: #1f2933;
        }
        .container {
            max-width: 600px;
            margin: 0 auto;
            padding: 40px 20px;
        }
        .card {
            background: #ffffff;
            border-radius: 12px;
            padding: 32px;
            border: 1px solid #e4e7eb;
        }
        .logo h1 {
            font-size: 26px;
            color: #2563eb;
            margin: 0 0 24px;
            text-align: center;
        }
        h2 {
            font-size: 22px;
            margin: 0 0 16px;
        }
        p {
            color: #52606d;
            font-size: 16px;
            line-height: 1.6;
            margin: 0 0 12px;
        }
        .info-box {
            background: #f0f4f8;
            border-radius: 8px;
            padding: 16px;
            margin: 16px 0;
        }
        .footer {
            text-align: center;
            margin-top: 32px;
            color: #9aa5b1;
            font-size: 12px;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="card">
            <div class="logo"><h1>TutorHub</h1></div>
            {{.Content}}
        </div>
        <div class="footer">
            <p>You are receiving this email because you teach on TutorHub.</p>
        </div>
    </div>
</body>
</html>
`

// PayoutCompletedTemplate tells an instructor a payout was sent
const PayoutCompletedTemplate = `
<h2>Your payout is on its way</h2>
<p>Hi {{if .InstructorName}}{{.InstructorName}}{{else}}there{{end}},</p>
<p>We have paid out your earnings for <strong>{{.Period}}</strong>.</p>
<div class="info-box">
    <p><strong>Amount:</strong> {{.Amount}}</p>
    {{if .Reference}}<p><strong>Reference:</strong> {{.Reference}}</p>{{end}}
</div>
<p>Please allow up to three business days for the funds to reflect.</p>
`
