package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/ardiansyahnr/edu_platform/database"
	"github.com/ardiansyahnr/edu_platform/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const certificateThreshold = 80.0

// CheckAndGenerateQuizCertificate issues an achievement certificate when a
// submission reaches the threshold. At most one certificate per (user, quiz).
// Meant to run in the background; failures are logged and never affect the
// submission itself.
func CheckAndGenerateQuizCertificate(user models.User, quiz models.Quiz, result ScoreResult) {
	if result.Percentage < certificateThreshold {
		return
	}

	var existing models.QuizCertificate
	if err := database.DB.Where("user_id = ? AND quiz_id = ?", user.ID, quiz.ID).
		First(&existing).Error; err == nil {
		return
	}

	title := fmt.Sprintf("%s - %.2f%%", quiz.Title, result.Percentage)

	htmlData, err := generateCertificateHTML(user.FullName, quiz.Title, result)
	if err != nil {
		log.Printf("🔥 Failed to generate certificate HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate PDF: %v", err)
		return
	}

	uploaded, err := UploadFile(bytes.NewReader(pdfBytes), FolderCertificates)
	if err != nil {
		log.Printf("🔥 Failed to upload certificate: %v", err)
		return
	}

	certificate := models.QuizCertificate{
		UserID:         user.ID,
		QuizID:         quiz.ID,
		Title:          title,
		CertificateURL: uploaded.URL,
		IssuedAt:       time.Now(),
	}

	if err := database.DB.Create(&certificate).Error; err != nil {
		log.Printf("🔥 Failed to create certificate record for user %s: %v", user.ID, err)
	} else {
		log.Printf("✅ Generated and uploaded certificate '%s' for user %s.", title, user.ID)
	}
}

func generateCertificateHTML(userName, quizTitle string, result ScoreResult) (string, error) {
	tmpl, err := template.ParseFiles("templates/certificate.html")
	if err != nil {
		return "", err
	}

	data := struct {
		UserName   string
		QuizTitle  string
		Score      int
		Total      int
		Percentage float64
		IssueDate  string
	}{
		UserName:   userName,
		QuizTitle:  quizTitle,
		Score:      result.Score,
		Total:      result.TotalQuestions,
		Percentage: result.Percentage,
		IssueDate:  time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}
