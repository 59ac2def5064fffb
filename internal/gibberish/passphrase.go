package gibberish

import "fmt"

// PassphraseSource supplies the passphrase for a single invocation.
type PassphraseSource interface {
	Passphrase() (string, error)
}

// FixedPassphrase is a passphrase known up front. The service uses it with
// the relevant file extension when the user did not ask to be prompted.
type FixedPassphrase string

func (p FixedPassphrase) Passphrase() (string, error) { return string(p), nil }

// Prompter talks to the user on the controlling terminal.
type Prompter interface {
	// ReadSecret shows prompt and reads one line without echo.
	ReadSecret(prompt string) (string, error)

	// Notice prints a line of feedback to the user.
	Notice(msg string)
}

// PromptPassphrase asks the user for a passphrase. With Confirm set the user
// types it twice, and is asked again until both entries match. Logger may be nil.
type PromptPassphrase struct {
	Prompter Prompter
	Confirm  bool
	Logger   Logger
}

func (p *PromptPassphrase) Passphrase() (string, error) {
	for {
		first, err := p.Prompter.ReadSecret("Passphrase: ")
		if err != nil {
			return "", fmt.Errorf("reading passphrase: %w", err)
		}
		if !p.Confirm {
			return first, nil
		}

		second, err := p.Prompter.ReadSecret("Confirm passphrase: ")
		if err != nil {
			return "", fmt.Errorf("reading passphrase confirmation: %w", err)
		}
		if first == second {
			return first, nil
		}

		if p.Logger != nil {
			p.Logger.Debug("passphrase confirmation mismatch")
		}
		p.Prompter.Notice("Passphrases do not match, try again")
	}
}
