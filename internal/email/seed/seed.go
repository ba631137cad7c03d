package seed

import emaildomain "maildash-backend/internal/email/domain"

// Emails returns the built-in batch the ingest workflow processes. In a
// larger deployment this would come from a mailbox sync; here the batch
// is fixed so the workflow is reproducible end to end.
func Emails() []emaildomain.RawEmail {
	return []emaildomain.RawEmail{
		{
			Sender:  "hr@example.com",
			Subject: "Interview Schedule for Next Week",
			Body:    "Hi, we would like to schedule a 30-minute interview with you next Tuesday at 3 PM. Please confirm your availability.",
		},
		{
			Sender:  "billing@saas-co.com",
			Subject: "Invoice for your subscription",
			Body:    "Dear customer, attached is the invoice for your monthly subscription. The total amount due is $49. Please pay by the due date to avoid service interruption.",
		},
		{
			Sender:  "support@store.com",
			Subject: "Re: Issue with recent order",
			Body:    "We are sorry to hear about the issue with your recent order. Could you please share a photo of the damaged item so we can assist you further?",
		},
		{
			Sender:  "marketing@newsletters.com",
			Subject: "Limited time offer just for you!",
			Body:    "Save 30% on all products this weekend only. Visit our website and use the code SAVE30 at checkout.",
		},
		{
			Sender:  "manager@company.com",
			Subject: "Weekly team sync-up",
			Body:    "Reminder: Our weekly team sync-up is scheduled for Friday at 10 AM. We'll discuss project updates and blockers.",
		},
	}
}
