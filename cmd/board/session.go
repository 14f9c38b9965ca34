package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dogechoco/messageboard/client"
	"github.com/dogechoco/messageboard/x/board"
	"github.com/dogechoco/messageboard/x/wallet"
)

const PassphraseEnv = "MESSAGEBOARD_PASSPHRASE"

var (
	alertStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62"))
)

type session struct {
	config Config
	client client.Client
	board  *board.Board
	prompt *prompter
}

// stderrNotifier prints alerts the way a browser alert would interrupt.
type stderrNotifier struct {
	w io.Writer
}

func (n stderrNotifier) Alert(message string) {
	fmt.Fprintln(n.w, alertStyle.Render(message))
}

func openSession(cmd *cobra.Command, notifier board.Notifier) (*session, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if endpoint != "" {
		config.Endpoint = endpoint
	}
	if exportDir != "" {
		config.ExportDir = exportDir
	}

	timeout, err := config.RequestTimeout()
	if err != nil {
		return nil, err
	}

	if notifier == nil {
		notifier = stderrNotifier{w: cmd.ErrOrStderr()}
	}

	c := client.NewClient(config.Endpoint, client.WithTimeout(timeout))
	b := board.New(c, notifier, board.Options{
		AdminAddress: config.AdminAddress,
		ExportDir:    config.ExportDir,
	})

	return &session{
		config: config,
		client: c,
		board:  b,
		prompt: newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr()),
	}, nil
}

// connect builds the configured wallet and connects the board to it.
// When confirm is set every signature is approved on the terminal first.
func (s *session) connect(ctx context.Context, confirm bool) error {
	w, err := newWallet(s.config.Wallet, s.prompt, confirm)
	if err != nil {
		return err
	}
	return s.board.Connect(ctx, w)
}

func newWallet(config WalletConfig, p *prompter, confirm bool) (wallet.Wallet, error) {
	var w wallet.Wallet
	switch config.Kind {
	case "keystore":
		if config.KeystoreDir == "" {
			return nil, errors.New("wallet.keystoreDir is required for the keystore wallet")
		}
		opts := []wallet.KeystoreOption{
			wallet.WithPassphrase(p.passphrase),
			wallet.WithSelector(p.selectAccount),
		}
		if config.Account != "" {
			opts = append(opts, wallet.WithAccount(config.Account))
		}
		if chain := config.Chain(); chain != nil {
			opts = append(opts, wallet.WithChain(*chain))
		}
		w = wallet.NewKeystoreWallet(config.KeystoreDir, opts...)
	case "injected":
		w = wallet.NewInjectedWallet(config.KeyFile)
	default:
		return nil, errors.Errorf("unknown wallet kind %q (supported: keystore, injected)", config.Kind)
	}

	if confirm {
		w = &confirmingWallet{Wallet: w, confirm: p.confirm}
	}
	return w, nil
}

type confirmingWallet struct {
	wallet.Wallet
	confirm wallet.ConfirmFunc
}

func (w *confirmingWallet) Connect(ctx context.Context) (wallet.Signer, error) {
	signer, err := w.Wallet.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return wallet.WithConfirmation(signer, w.confirm), nil
}

// prompter asks the user on the terminal, standing in for wallet popups.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

func (p *prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, promptStyle.Render(question)+" ")
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", errors.Wrap(err, "no answer")
	}
	return strings.TrimSpace(line), nil
}

func (p *prompter) passphrase(account common.Address) (string, error) {
	if v, ok := os.LookupEnv(PassphraseEnv); ok {
		return v, nil
	}
	return p.ask(fmt.Sprintf("Passphrase for %s:", account.Hex()))
}

func (p *prompter) selectAccount(accounts []common.Address) (common.Address, error) {
	for i, account := range accounts {
		fmt.Fprintf(p.out, "  [%d] %s\n", i+1, account.Hex())
	}
	answer, err := p.ask("Select an account:")
	if err != nil {
		return common.Address{}, err
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(accounts) {
		return common.Address{}, errors.Errorf("invalid selection %q", answer)
	}
	return accounts[n-1], nil
}

func (p *prompter) confirm(ctx context.Context, address common.Address, message []byte) error {
	fmt.Fprintf(p.out, "%s asks to sign:\n  %s\n", address.Hex(), string(message))
	answer, err := p.ask("Sign? [y/N]")
	if err != nil {
		return err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return nil
	}
	return errors.New("signature declined")
}
