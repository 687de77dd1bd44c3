package dispatch

import (
	"fmt"
	"strings"

	statex "github.com/pharmesol/pharmline/agent/state"
)

// Greeting builds the opening assistant turn. Known pharmacies get a
// personalized greeting with a volume-tier pitch; unknown callers get the
// information-gathering opener.
func Greeting(record *statex.PharmacyRecord) string {
	if record == nil {
		return `Thank you for calling Pharmesol! I don't have your information in our system yet.

Could you please tell me:
1. Your pharmacy name
2. Your location
3. Approximately how many prescriptions you fill per month

This will help me understand how we can best support your pharmacy's needs.`
	}

	locationInfo := ""
	if record.City != "" || record.State != "" {
		locationInfo = " in " + record.LocationDisplay()
	}

	volumeInfo := ""
	if record.RxVolume > 0 {
		switch record.Tier() {
		case statex.TierHighVolume:
			volumeInfo = " With your high prescription volume, you'd be an excellent fit for our premium tier services."
		case statex.TierMediumVolume:
			volumeInfo = " Your prescription volume puts you in a great position to benefit from our bulk pricing."
		default:
			volumeInfo = " We can offer competitive pricing and room to grow with our flexible service options."
		}
	}

	return fmt.Sprintf("Great! I see you're calling from %s%s.%s How can Pharmesol help you today?",
		record.Name, locationInfo, volumeInfo)
}

// Closing is the end-of-call line.
func Closing(session *statex.SessionState) string {
	return fmt.Sprintf("Thank you for your time today. I look forward to supporting %s's continued success with Pharmesol's reliable distribution services.",
		session.DisplayName())
}

// askForEmailPrompt varies wording with conversation length so a long call
// doesn't hear the same request twice.
func askForEmailPrompt(session *statex.SessionState) string {
	if len(session.Messages) > 3 {
		return "To send you our comprehensive service information, I'll need your email address. What's the best email to reach you at?"
	}
	return fmt.Sprintf("I'd be happy to send you detailed information about our services! Could you please provide your email address so I can send you everything %s needs to know about Pharmesol?",
		session.DisplayName())
}

const emailSendFailureApology = "I apologize, but I'm having trouble sending the email right now. Could you please provide your email address again?"

const callbackFailureApology = "I'm sorry, I wasn't able to get that callback scheduled just now. Could you give me your preferred time once more?"

func emailConfirmation(to string) string {
	return fmt.Sprintf("Great! I'll send you detailed information about our services to %s. You should receive it within the next few minutes.", to)
}

func callbackConfirmation(phone, preferredTime string) string {
	return fmt.Sprintf("Perfect! I'll make sure someone from our team calls you back at %s %s.", phone, preferredTime)
}

// fallbackResponse is the deterministic continuation used when the
// generative responder is unavailable. Its shape depends on whether an
// email address has already been collected.
func fallbackResponse(session *statex.SessionState) string {
	if !session.HasEmail() {
		return "I'd be happy to help you with information about Pharmesol's services. Could you please provide your email address so I can send you detailed information?"
	}
	return "Thank you for your interest in Pharmesol. Let me connect you with one of our specialists who can provide detailed information about our services. Would you prefer a callback or email follow-up?"
}

// emailContent selects subject and body by session kind and volume tier.
func emailContent(session *statex.SessionState) (subject, body string) {
	if session.IsKnownPharmacy() {
		return knownPharmacyEmail(session.Pharmacy)
	}
	return newLeadEmail(session.Lead)
}

func knownPharmacyEmail(record *statex.PharmacyRecord) (subject, body string) {
	subject = fmt.Sprintf("Following up on your call - %s", record.Name)

	contact := record.ContactPerson
	if contact == "" {
		contact = "there"
	}
	volume := "significant"
	if record.RxVolume > 0 {
		volume = fmt.Sprintf("%d", record.RxVolume)
	}

	body = fmt.Sprintf(`Dear %s,

Thank you for reaching out to us today. It's always great to hear from %s.

Based on our conversation and your %s monthly prescription volume, here's how Pharmesol can specifically support your pharmacy:

%s

Our team understands the unique challenges facing pharmacies in %s, and we're committed to providing solutions that help you serve your community better.

I'll be preparing detailed pricing information tailored to your volume and will follow up within the next business day.

Best regards,
Pharmesol Sales Team
Phone: (555) 123-4567
Email: sales@pharmesol.com`,
		contact, record.Name, volume, volumeBenefits(record.Tier()), record.LocationDisplay())
	return subject, body
}

func newLeadEmail(lead *statex.LeadData) (subject, body string) {
	pharmacyName := lead.PharmacyName
	if pharmacyName == "" {
		pharmacyName = "your pharmacy"
	}
	subject = fmt.Sprintf("Welcome to Pharmesol - %s", pharmacyName)

	contact := lead.ContactPerson
	if contact == "" {
		contact = "there"
	}

	body = fmt.Sprintf(`Dear %s,

Thank you for your interest in Pharmesol's pharmaceutical distribution services.

Based on our conversation about %s, here's what we can offer:

%s

We're excited about the opportunity to support %s's success and help you better serve your community.

Our team will follow up within the next few business days to discuss specific pricing and service details tailored to your needs.

Best regards,
Pharmesol Sales Team
Phone: (555) 123-4567
Email: sales@pharmesol.com`,
		contact, pharmacyName, volumeBenefits(lead.Tier()), pharmacyName)
	return subject, body
}

func volumeBenefits(tier statex.VolumeTier) string {
	switch tier {
	case statex.TierHighVolume:
		return `- Premium tier pricing with significant volume discounts
- Dedicated account manager for personalized service
- Priority inventory allocation and emergency delivery
- Flexible payment terms and credit options`
	case statex.TierMediumVolume:
		return `- Volume-based pricing tiers with competitive rates
- Reliable delivery scheduling (2-3 times per week)
- Account management support and regular check-ins
- Emergency delivery services when needed`
	case statex.TierLowVolume:
		return `- Competitive pricing structure designed for growing pharmacies
- Flexible delivery options (weekly or bi-weekly)
- Inventory management support
- No minimum order requirements to start`
	default:
		return `- Startup-friendly pricing with room to grow
- Flexible minimum order requirements
- Business development support and guidance
- Scalable solutions that adapt to your growth`
	}
}

// callbackNotes summarizes the session for the scheduling collaborator.
func callbackNotes(session *statex.SessionState) string {
	var parts []string

	if session.IsKnownPharmacy() {
		parts = append(parts, "Existing pharmacy: "+session.Pharmacy.Name)
		if session.Pharmacy.RxVolume > 0 {
			parts = append(parts, fmt.Sprintf("Volume: %d/month", session.Pharmacy.RxVolume))
		}
	} else {
		name := session.Lead.PharmacyName
		if name == "" {
			name = "TBD"
		}
		parts = append(parts, "New lead: "+name)
		if session.Lead.RxVolume > 0 {
			parts = append(parts, fmt.Sprintf("Estimated volume: %d/month", session.Lead.RxVolume))
		}
		parts = append(parts, fmt.Sprintf("Lead completeness: %d%%", session.Lead.CompletionPercentage()))
	}

	parts = append(parts, fmt.Sprintf("Conversation length: %d messages", len(session.Messages)))
	return strings.Join(parts, " | ")
}

// ContextSummary renders the session facts handed to the generative
// responder alongside the persona.
func ContextSummary(session *statex.SessionState) string {
	parts := []string{
		"PHONE: " + session.Phone,
		"STATUS: " + string(session.Status),
		fmt.Sprintf("MESSAGES: %d", len(session.Messages)),
	}

	if session.IsKnownPharmacy() {
		record := session.Pharmacy
		parts = append(parts,
			"KNOWN PHARMACY: "+record.Name,
			"LOCATION: "+record.LocationDisplay(),
			"TYPE: "+string(record.Tier()),
		)
		if record.RxVolume > 0 {
			parts = append(parts, fmt.Sprintf("VOLUME: %d", record.RxVolume))
		}
		if record.Email != "" {
			parts = append(parts, "EMAIL: "+record.Email)
		}
	} else {
		lead := session.Lead
		name := lead.PharmacyName
		if name == "" {
			name = "Unknown"
		}
		parts = append(parts,
			"NEW LEAD: "+name,
			fmt.Sprintf("COMPLETENESS: %d%%", lead.CompletionPercentage()),
		)
		if lead.Email != "" {
			parts = append(parts, "EMAIL: "+lead.Email)
		}
		if lead.RxVolume > 0 {
			parts = append(parts, fmt.Sprintf("VOLUME: %d", lead.RxVolume))
		}
	}

	return strings.Join(parts, " | ")
}
