package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/moecode-c/mohammedcourseswebsite-sub000/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Mohammed Courses <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// getEmailTemplate wraps body content in the standard email layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #333333; text-align: center;">%s</h2>
					%s
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">Mohammed Courses Team</p>
				</div>
			</body>
		</html>
	`, title, bodyContent)
}

// SendUnlockEmail notifies a student that their course access was approved
func SendUnlockEmail(email, userName, courseName string) error {
	body := fmt.Sprintf(`
		<p style="font-size: 16px; color: #555555;">Dear %s,</p>
		<p style="font-size: 16px; color: #555555;">Your payment was verified and you now have full access to:</p>
		<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
		<p style="font-size: 14px; color: #666666;">Complete all sections and quizzes to earn XP and climb the leaderboard. Good luck!</p>
	`, userName, courseName)

	return SendEmail([]string{email}, "Course Access Approved", getEmailTemplate("🎉 Course Unlocked!", body))
}

// SendCertificateEmail sends certificate notification email
func SendCertificateEmail(email, userName, courseName, certificateNumber string) error {
	body := fmt.Sprintf(`
		<p style="font-size: 16px; color: #555555;">Dear %s,</p>
		<p style="font-size: 16px; color: #555555;">Congratulations on completing the course:</p>
		<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
		<div style="background-color: #f8f9fa; border-radius: 8px; padding: 20px; margin: 20px 0; text-align: center;">
			<p style="font-size: 14px; color: #666666; margin-bottom: 10px;">Your Certificate Number:</p>
			<h2 style="color: #2196F3; margin: 0;">%s</h2>
		</div>
		<p style="font-size: 14px; color: #666666;">Your certificate has been approved. You can use this certificate number for verification purposes.</p>
	`, userName, courseName, certificateNumber)

	return SendEmail([]string{email}, "Course Completion Certificate", getEmailTemplate("🏆 Certificate of Completion", body))
}

// SendPendingReminderEmail tells the admin how many requests await review
func SendPendingReminderEmail(email string, accessPending, certificatePending int64) error {
	body := fmt.Sprintf(`
		<p style="font-size: 16px; color: #555555;">There are requests waiting for review:</p>
		<ul style="font-size: 15px; color: #555555;">
			<li>%d pending course unlock request(s)</li>
			<li>%d pending certificate request(s)</li>
		</ul>
	`, accessPending, certificatePending)

	return SendEmail([]string{email}, "Pending Requests Reminder", getEmailTemplate("Pending Requests", body))
}
