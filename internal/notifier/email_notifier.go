package notifier

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	config "github.com/JoaoOliveiraaa/minishop/configs"
)

// SendOrderEmail sends the order confirmation for a store. Best-effort:
// callers run it off the request path and only log failures.
func SendOrderEmail(recipientEmail, customerName, storeName, orderNumber string, totalAmount float64) error {
	cfg := config.LoadEmailConfig()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")),
	)
	if err != nil {
		log.Printf("Failed to load AWS SDK config for email to %s (order %s): %v", recipientEmail, orderNumber, err)
		return fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	client := ses.NewFromConfig(awsCfg)

	if cfg.SenderEmail == "" {
		return fmt.Errorf("sender email address is not configured in environment variables")
	}
	if recipientEmail == "" {
		return fmt.Errorf("recipient email address is empty")
	}

	subject := fmt.Sprintf("%s - Order %s Confirmation", storeName, orderNumber)

	totalAmountStr := strconv.FormatFloat(totalAmount, 'f', 2, 64)

	bodyHTML := fmt.Sprintf(`
        <html>
        <body>
            <p>Dear %s,</p>
            <p>Thank you for shopping at %s! Your order %s has been successfully placed.</p>
            <p><strong>Order Details:</strong></p>
            <ul>
                <li>Order Number: %s</li>
                <li>Total Amount: %s</li>
            </ul>
            <p>We'll send you another email when your order ships.</p>
            <p>Best regards,</p>
            <p>The %s Team</p>
        </body>
        </html>`, customerName, storeName, orderNumber, orderNumber, totalAmountStr, storeName)

	bodyText := fmt.Sprintf(
		"Dear %s,\n\nThank you for shopping at %s! Your order %s has been successfully placed.\n\n"+
			"Order Details:\nOrder Number: %s\nTotal Amount: %s\n\n"+
			"We'll send you another email when your order ships.\n\nBest regards,\nThe %s Team",
		customerName, storeName, orderNumber, orderNumber, totalAmountStr, storeName)

	input := &ses.SendEmailInput{
		Source: aws.String(cfg.SenderEmail),
		Destination: &types.Destination{
			ToAddresses: []string{recipientEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyHTML),
				},
				Text: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyText),
				},
			},
		},
	}

	_, err = client.SendEmail(context.TODO(), input)
	if err != nil {
		log.Printf("Failed to send email for order %s to %s: %v", orderNumber, recipientEmail, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("Order confirmation email sent successfully for order %s to %s", orderNumber, recipientEmail)
	return nil
}
