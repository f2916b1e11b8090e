package email

import (
	htmltemplate "html/template"
	texttemplate "text/template"
)

var funcs = map[string]any{
	"brand": func() string { return brandName },
}

var adminHTML = htmltemplate.Must(htmltemplate.New("admin.html").Funcs(funcs).Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">New Contact Form Message</h2>
  <div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
    <p><strong>Message ID:</strong> #{{.MessageID}}</p>
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
    <p><strong>Subject:</strong> {{.Subject}}</p>
    <p><strong>Time:</strong> {{.ReceivedAt.Format "2006-01-02 15:04:05 MST"}}</p>
    <hr>
    <p><strong>Message:</strong></p>
    <p style="white-space: pre-wrap; background-color: white; padding: 15px; border-radius: 3px;">{{.Message}}</p>
  </div>
</div>`))

var adminText = texttemplate.Must(texttemplate.New("admin.txt").Funcs(funcs).Parse(`New Contact Form Message
=======================
Message ID: #{{.MessageID}}
Name: {{.Name}}
Email: {{.Email}}
Subject: {{.Subject}}
Time: {{.ReceivedAt.Format "2006-01-02 15:04:05 MST"}}

Message:
{{.Message}}
`))

var replyHTML = htmltemplate.Must(htmltemplate.New("reply.html").Funcs(funcs).Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #4CAF50;">Thank You for Contacting Us!</h2>
  <p>Dear {{.Name}},</p>
  <p>We have received your message and will get back to you as soon as possible.</p>
  <div style="background-color: #f5f5f5; padding: 15px; border-radius: 5px; margin: 20px 0;">
    <p><strong>Your Message (Preview):</strong></p>
    <p style="font-style: italic;">"{{.Preview}}"</p>
  </div>
  <p>We typically respond within 24 hours.</p>
  <p>Best regards,<br>The {{brand}} Team</p>
</div>`))

var replyText = texttemplate.Must(texttemplate.New("reply.txt").Funcs(funcs).Parse(`Thank You for Contacting {{brand}}!

Dear {{.Name}},

We have received your message and will get back to you as soon as possible.

Your Message (Preview):
"{{.Preview}}"

We typically respond within 24 hours.

Best regards,
The {{brand}} Team
`))
