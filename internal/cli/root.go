// Package cli wires the calculator into a cobra command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"e200x/getmask/internal/subnet"
	"e200x/getmask/internal/whois"
)

// Version gets overridden via -ldflags at build time
// (e.g. -X e200x/getmask/internal/cli.Version=v1.2.3).
var Version = "dev"

const rule = "------------------------------------------------"

var (
	ruleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	titleStyle = lipgloss.NewStyle().Bold(true).Width(len(rule)).Align(lipgloss.Center)
)

// NewRootCmd constructs the root command with isolated flag state.
// Output goes to the command's writer so tests can capture it.
func NewRootCmd() *cobra.Command {
	var (
		brief   bool
		doWhois bool
	)

	cmd := &cobra.Command{
		Use:   "getmask [--brief] [--whois] <mask|ip/mask> [netmask]",
		Short: "IPv4 subnet mask and network calculator",
		Long: `getmask converts between subnet mask notations (CIDR prefix, dotted
decimal, hexadecimal) and, given an address with a mask, derives the
network and broadcast addresses and the usable host range. The block's
owner can be looked up through the system whois client.`,
		Example: `  getmask 24
  getmask 0xffffff00
  getmask 192.168.1.10/24
  getmask 192.168.1.10 255.255.255.0
  getmask --brief 10.0.0.5/30
  getmask --whois 8.8.8.8/24`,
		Args:          cobra.RangeArgs(1, 2),
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, brief, doWhois)
		},
	}

	cmd.Flags().BoolVar(&brief, "brief", false, "single-line summary (IP/mask forms only)")
	cmd.Flags().BoolVar(&doWhois, "whois", false, "append WHOIS organization/country lookup (IP/mask forms only)")

	return cmd
}

// Execute runs the root command and exits nonzero on any failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func run(cmd *cobra.Command, args []string, brief, doWhois bool) error {
	arg := args[0]
	if len(args) == 2 {
		// Two-token form is shorthand for ip/mask.
		arg = args[0] + "/" + args[1]
	}

	if ip, mask, ok := strings.Cut(arg, "/"); ok {
		return runNetwork(cmd, ip, mask, brief, doWhois)
	}
	if brief || doWhois {
		return errors.New("--brief and --whois are only available for IP/mask inputs")
	}
	return runMask(cmd, arg)
}

func runMask(cmd *cobra.Command, token string) error {
	mask, err := subnet.Normalize(token, subnet.RejectAmbiguous)
	if err != nil {
		if errors.Is(err, subnet.ErrAmbiguousIP) {
			log.Warnf("input %s looks like an IP address, not a netmask", token)
			log.Warnf("hint: use IP/mask format like %s/24", token)
		}
		return err
	}
	info, err := subnet.MaskInfo(mask)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	header(w, "TCP/IP SUBNET MASK EQUIVALENTS")
	row(w, "CIDR", "/"+strconv.Itoa(info.CIDR))
	row(w, "Netmask", info.Netmask)
	row(w, "Netmask (hex)", info.NetmaskHex)
	row(w, "Wildcard Bits", info.Wildcard)
	row(w, "Usable IP Addresses", humanize.Comma(int64(info.UsableCount)))
	advise(info.CIDR)
	return nil
}

func runNetwork(cmd *cobra.Command, ip, mask string, brief, doWhois bool) error {
	info, err := subnet.NetworkInfo(ip, mask)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	if brief {
		fmt.Fprintf(w, "CIDR: /%d | Network: %s | Broadcast: %s | Range: %s-%s\n",
			info.CIDR, info.Network, info.Broadcast, info.FirstUsable, info.LastUsable)
		return nil
	}

	header(w, "TCP/IP NETWORK INFORMATION")
	row(w, "IP Entered", info.IP)
	row(w, "CIDR", "/"+strconv.Itoa(info.CIDR))
	row(w, "Netmask", info.Netmask)
	row(w, "Netmask (hex)", info.NetmaskHex)
	row(w, "Wildcard Bits", info.Wildcard)
	fmt.Fprintln(w, ruleStyle.Render(rule))
	row(w, "Network Address", info.Network)
	row(w, "Broadcast Address", info.Broadcast)
	row(w, "Usable IP Addresses", humanize.Comma(int64(info.UsableCount)))
	if info.HasHostRange() {
		row(w, "First Usable IP", info.FirstUsable)
		row(w, "Last Usable IP", info.LastUsable)
	}
	advise(info.CIDR)

	if doWhois {
		lookupWhois(w, info.IP)
	}
	return nil
}

// lookupWhois appends the whois table. Failures degrade to warnings so
// the network computation above always stands on its own.
func lookupWhois(w io.Writer, addr string) {
	ctx, cancel := context.WithTimeout(context.Background(), whois.DefaultTimeout)
	defer cancel()

	rec, err := whois.Lookup(ctx, addr)
	if err != nil {
		if errors.Is(err, whois.ErrNotInstalled) {
			log.Warn("system whois client not found, install with 'apt install whois' or 'brew install whois'")
		} else {
			log.Warnf("whois lookup failed: %v", err)
		}
		return
	}

	header(w, "WHOIS INFORMATION")
	row(w, "Organization", rec.Organization)
	row(w, "Country", rec.Country)
}

func header(w io.Writer, title string) {
	fmt.Fprintln(w, ruleStyle.Render(rule))
	fmt.Fprintln(w, titleStyle.Render(title))
	fmt.Fprintln(w, ruleStyle.Render(rule))
}

func row(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%-25s: %s\n", label, value)
}

func advise(cidr int) {
	switch cidr {
	case 31:
		log.Warn("/31 subnet: only 2 IPs (point-to-point link)")
	case 32:
		log.Warn("/32 subnet: single host address")
	}
}
