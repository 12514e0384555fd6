package domain

// NotificationChannel is a delivery channel for notification templates
type NotificationChannel string

const (
	ChannelEmail    NotificationChannel = "email"
	ChannelSMS      NotificationChannel = "sms"
	ChannelWhatsApp NotificationChannel = "whatsapp"
)

// NotificationRecipient is the addressee class of a template
type NotificationRecipient string

const (
	RecipientCustomer NotificationRecipient = "customer"
	RecipientEmployee NotificationRecipient = "employee"
	RecipientAdmin    NotificationRecipient = "admin"
)

// NotificationEvent is the appointment lifecycle event a template reacts to
type NotificationEvent string

const (
	EventPending  NotificationEvent = "pending"
	EventApproved NotificationEvent = "approved"
	EventDeclined NotificationEvent = "declined"
	EventCanceled NotificationEvent = "canceled"
	EventReminder NotificationEvent = "reminder"
	EventFollowUp NotificationEvent = "follow_up"
)

// NotificationChannels lists all configurable channels.
var NotificationChannels = []NotificationChannel{ChannelEmail, ChannelSMS, ChannelWhatsApp}

// NotificationRecipients lists all configurable recipient classes.
var NotificationRecipients = []NotificationRecipient{RecipientCustomer, RecipientEmployee, RecipientAdmin}

// NotificationEvents lists all configurable lifecycle events.
var NotificationEvents = []NotificationEvent{
	EventPending, EventApproved, EventDeclined, EventCanceled, EventReminder, EventFollowUp,
}

// NotificationTemplate is a subject/body pair with {shortcode} placeholders
type NotificationTemplate struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NotificationSettings is the full template configuration surface.
// Templates are keyed channel -> recipient -> event; missing keys mean
// "no template configured". Delivery itself is outside this system.
type NotificationSettings struct {
	Enabled   bool                                                                                      `json:"enabled"`
	Templates map[NotificationChannel]map[NotificationRecipient]map[NotificationEvent]NotificationTemplate `json:"templates"`
}

// Template looks up a configured template.
func (n *NotificationSettings) Template(ch NotificationChannel, rec NotificationRecipient, ev NotificationEvent) (NotificationTemplate, bool) {
	if n == nil || n.Templates == nil {
		return NotificationTemplate{}, false
	}
	byRecipient, ok := n.Templates[ch]
	if !ok {
		return NotificationTemplate{}, false
	}
	byEvent, ok := byRecipient[rec]
	if !ok {
		return NotificationTemplate{}, false
	}
	tpl, ok := byEvent[ev]
	return tpl, ok
}

// SetTemplate stores a template, allocating intermediate maps as needed.
func (n *NotificationSettings) SetTemplate(ch NotificationChannel, rec NotificationRecipient, ev NotificationEvent, tpl NotificationTemplate) {
	if n.Templates == nil {
		n.Templates = make(map[NotificationChannel]map[NotificationRecipient]map[NotificationEvent]NotificationTemplate)
	}
	if n.Templates[ch] == nil {
		n.Templates[ch] = make(map[NotificationRecipient]map[NotificationEvent]NotificationTemplate)
	}
	if n.Templates[ch][rec] == nil {
		n.Templates[ch][rec] = make(map[NotificationEvent]NotificationTemplate)
	}
	n.Templates[ch][rec][ev] = tpl
}
