package constant

import "codebenders/internal/dto"

// Personas offered once requirements exist for a scope.
var PersonaCatalog = []dto.Persona{
	{
		Id:          "persona-1",
		Name:        "System Administrator",
		Description: "Manages user accounts, system configurations, and monitors platform health. Requires comprehensive dashboard with admin controls.",
		Goals:       []string{"Efficient user management", "System monitoring", "Access control"},
		PainPoints:  []string{"Complex configuration processes", "Limited visibility into system health"},
		KeyFeatures: []string{"User management dashboard", "System analytics", "Role-based access control"},
	},
	{
		Id:          "persona-2",
		Name:        "Business Analyst",
		Description: "Analyzes business data, generates reports, and makes data-driven decisions. Needs intuitive analytics and reporting tools.",
		Goals:       []string{"Data visualization", "Report generation", "Trend analysis"},
		PainPoints:  []string{"Difficulty in accessing real-time data", "Complex reporting interfaces"},
		KeyFeatures: []string{"Interactive dashboards", "Custom report builder", "Data export capabilities"},
	},
	{
		Id:          "persona-3",
		Name:        "End User/Customer",
		Description: "Primary user of the application who interacts with core features. Expects simple, intuitive interface with quick task completion.",
		Goals:       []string{"Quick task completion", "Easy navigation", "Reliable service"},
		PainPoints:  []string{"Complicated workflows", "Slow response times"},
		KeyFeatures: []string{"Streamlined workflows", "Quick actions", "Responsive interface"},
	},
	{
		Id:          "persona-4",
		Name:        "Developer/Technical User",
		Description: "Integrates systems, manages APIs, and customizes functionality. Requires technical documentation and developer tools.",
		Goals:       []string{"API integration", "System customization", "Technical documentation"},
		PainPoints:  []string{"Poor API documentation", "Limited customization options"},
		KeyFeatures: []string{"API documentation", "Developer console", "Webhook management"},
	},
}

// ThirdPartyCatalog lists the integrations suggested for a requirements document.
var ThirdPartyCatalog = []dto.ThirdPartyAPI{
	{
		Name:          "Stripe",
		Category:      "payment",
		Provider:      "Stripe Inc.",
		Description:   "Payment processing and subscription management",
		Purpose:       "Handle secure payments, subscriptions, and invoicing",
		Required:      true,
		Features:      []string{"Credit card processing", "Subscription billing", "Invoice generation", "Payment webhooks"},
		Endpoints:     []string{"POST /v1/payment_intents", "POST /v1/customers", "POST /v1/subscriptions"},
		Documentation: "https://stripe.com/docs/api",
	},
	{
		Name:          "Google Maps",
		Category:      "maps",
		Provider:      "Google",
		Description:   "Location services and mapping",
		Purpose:       "Provide location search, geocoding, and map visualization",
		Required:      true,
		Features:      []string{"Geocoding", "Place search", "Distance matrix", "Static maps"},
		Endpoints:     []string{"GET /maps/api/geocode/json", "GET /maps/api/place/nearbysearch/json", "GET /maps/api/distancematrix/json"},
		Documentation: "https://developers.google.com/maps/documentation",
	},
	{
		Name:          "Auth0",
		Category:      "oauth",
		Provider:      "Auth0",
		Description:   "Authentication and authorization platform",
		Purpose:       "Manage user authentication with OAuth 2.0 and social login",
		Required:      false,
		Features:      []string{"Social login (Google, Facebook, etc.)", "Multi-factor authentication", "Single sign-on", "User management"},
		Endpoints:     []string{"POST /oauth/token", "GET /userinfo", "POST /dbconnections/signup"},
		Documentation: "https://auth0.com/docs/api",
	},
	{
		Name:          "Twilio",
		Category:      "sms",
		Provider:      "Twilio",
		Description:   "SMS and communication services",
		Purpose:       "Send SMS notifications and verification codes",
		Required:      false,
		Features:      []string{"SMS messaging", "Phone verification", "Two-factor authentication", "Delivery tracking"},
		Endpoints:     []string{"POST /2010-04-01/Accounts/{AccountSid}/Messages.json", "GET /2010-04-01/Accounts/{AccountSid}/Messages/{MessageSid}.json"},
		Documentation: "https://www.twilio.com/docs/sms",
	},
	{
		Name:          "SendGrid",
		Category:      "email",
		Provider:      "Twilio SendGrid",
		Description:   "Email delivery and marketing platform",
		Purpose:       "Send transactional and marketing emails",
		Required:      true,
		Features:      []string{"Transactional emails", "Email templates", "Email analytics", "Bounce handling"},
		Endpoints:     []string{"POST /v3/mail/send", "GET /v3/stats"},
		Documentation: "https://docs.sendgrid.com/api-reference",
	},
}

// ProviderCatalog maps an API category to its candidate providers, the
// recommended one first.
var ProviderCatalog = map[string][]dto.ProviderOption{
	"payment": {
		{Name: "Stripe", Description: "Developer-first payments with subscriptions and invoicing", Pricing: "2.9% + 30¢ per charge", Website: "https://stripe.com", Recommended: true},
		{Name: "PayPal", Description: "Checkout with PayPal wallets and cards", Pricing: "3.49% + 49¢ per transaction", Website: "https://developer.paypal.com"},
		{Name: "Square", Description: "Online and in-person payments", Pricing: "2.9% + 30¢ per online charge", Website: "https://developer.squareup.com"},
	},
	"maps": {
		{Name: "Google Maps", Description: "Geocoding, places and routing", Pricing: "$200 monthly credit", Website: "https://developers.google.com/maps", Recommended: true},
		{Name: "Mapbox", Description: "Customizable vector maps and navigation", Pricing: "Free up to 50k map loads", Website: "https://www.mapbox.com"},
		{Name: "HERE", Description: "Location platform with fleet routing", Pricing: "Free up to 250k transactions", Website: "https://developer.here.com"},
	},
	"oauth": {
		{Name: "Auth0", Description: "Hosted login with social and enterprise connections", Pricing: "Free up to 25k MAU", Website: "https://auth0.com", Recommended: true},
		{Name: "Okta", Description: "Workforce and customer identity", Pricing: "Contact sales", Website: "https://developer.okta.com"},
		{Name: "Firebase Authentication", Description: "Email, phone and social sign-in", Pricing: "Free up to 50k MAU", Website: "https://firebase.google.com/products/auth"},
	},
	"sms": {
		{Name: "Twilio", Description: "Programmable SMS and verification", Pricing: "$0.0079 per SMS (US)", Website: "https://www.twilio.com", Recommended: true},
		{Name: "Vonage", Description: "SMS and voice APIs", Pricing: "$0.0077 per SMS (US)", Website: "https://developer.vonage.com"},
		{Name: "MessageBird", Description: "Omnichannel messaging", Pricing: "Pay as you go", Website: "https://developers.messagebird.com"},
	},
	"email": {
		{Name: "SendGrid", Description: "Transactional and marketing email", Pricing: "Free up to 100 emails/day", Website: "https://sendgrid.com", Recommended: true},
		{Name: "Mailgun", Description: "Email API with validation", Pricing: "Free trial, then from $15/month", Website: "https://www.mailgun.com"},
		{Name: "Amazon SES", Description: "High volume email on AWS", Pricing: "$0.10 per 1,000 emails", Website: "https://aws.amazon.com/ses"},
	},
}

// ProviderKeys lists the credentials each provider needs.
var ProviderKeys = map[string][]dto.APIKeyField{
	"Stripe": {
		{Field: "STRIPE_PUBLISHABLE_KEY", Label: "Publishable key", Placeholder: "pk_live_..."},
		{Field: "STRIPE_SECRET_KEY", Label: "Secret key", Placeholder: "sk_live_..."},
	},
	"PayPal": {
		{Field: "PAYPAL_CLIENT_ID", Label: "Client ID"},
		{Field: "PAYPAL_CLIENT_SECRET", Label: "Client secret"},
	},
	"Square": {
		{Field: "SQUARE_APPLICATION_ID", Label: "Application ID"},
		{Field: "SQUARE_ACCESS_TOKEN", Label: "Access token"},
	},
	"Google Maps": {
		{Field: "GOOGLE_MAPS_API_KEY", Label: "API key", Placeholder: "AIza..."},
	},
	"Mapbox": {
		{Field: "MAPBOX_ACCESS_TOKEN", Label: "Access token", Placeholder: "pk.eyJ..."},
	},
	"HERE": {
		{Field: "HERE_API_KEY", Label: "API key"},
	},
	"Auth0": {
		{Field: "AUTH0_DOMAIN", Label: "Domain", Placeholder: "your-tenant.auth0.com"},
		{Field: "AUTH0_CLIENT_ID", Label: "Client ID"},
		{Field: "AUTH0_CLIENT_SECRET", Label: "Client secret"},
	},
	"Okta": {
		{Field: "OKTA_DOMAIN", Label: "Okta domain"},
		{Field: "OKTA_CLIENT_ID", Label: "Client ID"},
	},
	"Firebase Authentication": {
		{Field: "FIREBASE_API_KEY", Label: "Web API key"},
		{Field: "FIREBASE_PROJECT_ID", Label: "Project ID"},
	},
	"Twilio": {
		{Field: "TWILIO_ACCOUNT_SID", Label: "Account SID", Placeholder: "AC..."},
		{Field: "TWILIO_AUTH_TOKEN", Label: "Auth token"},
	},
	"Vonage": {
		{Field: "VONAGE_API_KEY", Label: "API key"},
		{Field: "VONAGE_API_SECRET", Label: "API secret"},
	},
	"MessageBird": {
		{Field: "MESSAGEBIRD_ACCESS_KEY", Label: "Access key"},
	},
	"SendGrid": {
		{Field: "SENDGRID_API_KEY", Label: "API key", Placeholder: "SG..."},
	},
	"Mailgun": {
		{Field: "MAILGUN_API_KEY", Label: "API key"},
		{Field: "MAILGUN_DOMAIN", Label: "Sending domain"},
	},
	"Amazon SES": {
		{Field: "AWS_ACCESS_KEY_ID", Label: "Access key ID"},
		{Field: "AWS_SECRET_ACCESS_KEY", Label: "Secret access key"},
		{Field: "AWS_REGION", Label: "Region", Placeholder: "us-east-1"},
	},
}

// ThirdPartyKeywords decides which catalog APIs a requirements document asks
// for, by category. Matching is case-insensitive on the whole text.
var ThirdPartyKeywords = map[string][]string{
	"payment": {"payment", "checkout", "subscription", "billing", "invoice", "pay "},
	"maps":    {"map", "location", "geocod", "address", "nearby", "delivery"},
	"oauth":   {"login", "sign in", "sign-in", "oauth", "sso", "social", "authentication"},
	"sms":     {"sms", "text message", "phone verification", "otp", "two-factor", "2fa"},
	"email":   {"email", "e-mail", "newsletter", "notification"},
}
