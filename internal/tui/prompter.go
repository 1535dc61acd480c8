package tui

// Prompter answers the controller's confirmations from answers the dialog
// collected beforehand through its modals, and buffers alerts for the status
// bar. A confirmation without a queued answer is declined.
type Prompter struct {
	answers []bool
	alerts  []string
}

// NewPrompter returns an empty Prompter.
func NewPrompter() *Prompter {
	return &Prompter{}
}

// Queue appends answers for the next confirmations, in order.
func (p *Prompter) Queue(answers ...bool) {
	p.answers = append(p.answers, answers...)
}

func (p *Prompter) Confirm(string) bool {
	if len(p.answers) == 0 {
		return false
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer
}

func (p *Prompter) Alert(message string) {
	p.alerts = append(p.alerts, message)
}

// Drain returns and clears the buffered alerts and any unused answers.
func (p *Prompter) Drain() []string {
	alerts := p.alerts
	p.alerts = nil
	p.answers = nil
	return alerts
}
