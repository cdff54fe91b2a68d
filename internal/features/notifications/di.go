package notifications

import (
	"sync"

	"github.com/bisweshmaharana/blizz-share/internal/config"
	"github.com/bisweshmaharana/blizz-share/internal/util/logger"
)

var (
	once            sync.Once
	emailSMTPSender *EmailSMTPSender
	accessNotifier  *AccessNotifier
)

func setup() {
	once.Do(func() {
		env := config.GetEnv()
		log := logger.GetLogger()

		emailSMTPSender = &EmailSMTPSender{
			log,
			env.SMTPHost,
			env.SMTPPort,
			env.SMTPUser,
			env.SMTPPassword,
			env.SMTPFrom,
			env.SMTPHost != "" && env.SMTPPort != 0,
		}

		accessNotifier = &AccessNotifier{
			emailSMTPSender,
			log,
		}
	})
}

func GetEmailSMTPSender() *EmailSMTPSender {
	setup()
	return emailSMTPSender
}

func GetAccessNotifier() *AccessNotifier {
	setup()
	return accessNotifier
}
