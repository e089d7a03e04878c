// clinic-shell is a terminal front end for the clinic API. It carries the
// same device-local state the web shell does: a session snapshot, a cart,
// and the admin gate flag, all persisted under a state directory so they
// survive between runs.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"clinic-api/internal/cart"
	"clinic-api/internal/client"
	"clinic-api/internal/config"
	"clinic-api/internal/localstore"
	"clinic-api/internal/models"
	"clinic-api/internal/session"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	baseURL := os.Getenv("CLINIC_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}

	store, err := localstore.NewFileStore(cfg.State.Dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open state directory: %v\n", err)
		os.Exit(1)
	}

	api := client.New(baseURL)
	sessions := session.NewManager(store, api)
	carts := cart.NewManager(store)
	gate := session.NewAdminGate(store, cfg.Admin.Username, cfg.Admin.Password)

	shell := &shell{api: api, sessions: sessions, carts: carts, gate: gate}
	shell.run()
}

type shell struct {
	api      *client.Client
	sessions *session.Manager
	carts    *cart.Manager
	gate     *session.AdminGate
}

func (s *shell) run() {
	fmt.Println("Happy Diagnostics Center — terminal shell")
	if snapshot, ok := s.sessions.Current(); ok {
		fmt.Printf("Welcome back, %s\n", displayName(snapshot))
	}
	fmt.Println(`Commands: signup login logout whoami add remove cart checkout orders payments admin-login admin-logout quit`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return
		}
		s.dispatch(fields[0], fields[1:], scanner)
	}
}

func (s *shell) dispatch(command string, args []string, scanner *bufio.Scanner) {
	switch command {
	case "signup":
		s.signup(scanner)
	case "login":
		s.login(scanner)
	case "logout":
		s.sessions.Logout()
		fmt.Println("Logged out. Your cart is kept.")
	case "whoami":
		snapshot, ok := s.sessions.Current()
		if !ok {
			fmt.Println("Not logged in")
			return
		}
		fmt.Printf("%s (mobile %s), has orders: %v\n", displayName(snapshot), snapshot.Mobile, s.sessions.HasOrders())
	case "add":
		if len(args) < 2 {
			fmt.Println("usage: add <price> <package name...>")
			return
		}
		name := strings.Join(args[1:], " ")
		s.carts.Add(cart.Item{Name: name, Price: args[0]})
		fmt.Printf("Cart: %d items, total %.2f\n", s.carts.Count(), s.carts.Total())
	case "remove":
		if len(args) == 0 {
			fmt.Println("usage: remove <package name...>")
			return
		}
		s.carts.Remove(strings.Join(args, " "))
		fmt.Printf("Cart: %d items, total %.2f\n", s.carts.Count(), s.carts.Total())
	case "cart":
		for _, item := range s.carts.Items() {
			fmt.Printf("  %s — %s\n", item.Name, item.Price)
		}
		fmt.Printf("Total %.2f (%d items)\n", s.carts.Total(), s.carts.Count())
	case "checkout":
		s.checkout()
	case "orders":
		s.orders()
	case "payments":
		s.payments()
	case "admin-login":
		s.adminLogin(scanner)
	case "admin-logout":
		s.gate.Logout()
		fmt.Println("Admin session cleared")
	default:
		fmt.Printf("Unknown command %q\n", command)
	}
}

func (s *shell) signup(scanner *bufio.Scanner) {
	req := models.SignupRequest{
		Mobile:   prompt(scanner, "Mobile (10 digits): "),
		Password: prompt(scanner, "Password: "),
		Name:     prompt(scanner, "Name (optional): "),
		Email:    prompt(scanner, "Email (optional): "),
	}
	account, err := s.api.Signup(req)
	if err != nil {
		reportError(err)
		return
	}
	fmt.Printf("Account created for %s\n", account.Mobile)
}

func (s *shell) login(scanner *bufio.Scanner) {
	req := models.LoginRequest{
		Mobile:   prompt(scanner, "Mobile: "),
		Password: prompt(scanner, "Password: "),
	}
	account, err := s.api.Login(req)
	if err != nil {
		reportError(err)
		return
	}
	s.sessions.Login(session.Snapshot{
		UserID: account.ID,
		Mobile: account.Mobile,
		Name:   account.Name,
		Email:  account.Email,
	})
	fmt.Printf("Logged in as %s\n", account.Mobile)
}

func (s *shell) checkout() {
	snapshot, ok := s.sessions.Current()
	if !ok {
		fmt.Println("Please log in first")
		return
	}
	items := s.carts.Items()
	if len(items) == 0 {
		fmt.Println("Your cart is empty")
		return
	}

	packages := make([]models.PackageItem, len(items))
	for i, item := range items {
		packages[i] = models.PackageItem{Name: item.Name, Price: item.Price}
	}
	result, err := s.api.Checkout(snapshot.UserID, packages)
	if err != nil {
		reportError(err)
		return
	}

	// Cart clears only after the whole checkout succeeded.
	s.sessions.RefreshOrders()
	s.carts.Clear()
	fmt.Printf("Booked %d packages. Pay %.2f in cash at the center, reference %s\n",
		len(result.Bookings), result.Payment.Amount, result.Payment.TransactionID)
}

func (s *shell) orders() {
	snapshot, ok := s.sessions.Current()
	if !ok {
		fmt.Println("Please log in first")
		return
	}
	bookings, err := s.api.Bookings(snapshot.UserID)
	if err != nil {
		reportError(err)
		return
	}
	for _, booking := range bookings {
		fmt.Printf("  %s — %s (%.2f) [%s]\n", booking.ID[:8], booking.PackageName, booking.PackagePrice, booking.Status)
	}
}

func (s *shell) payments() {
	snapshot, ok := s.sessions.Current()
	if !ok {
		fmt.Println("Please log in first")
		return
	}
	payments, err := s.api.Payments(snapshot.UserID)
	if err != nil {
		reportError(err)
		return
	}
	for _, payment := range payments {
		fmt.Printf("  %s — %.2f via %s [%s]\n", payment.TransactionID, payment.Amount, payment.PaymentMethod, payment.Status)
	}
}

func (s *shell) adminLogin(scanner *bufio.Scanner) {
	username := prompt(scanner, "Admin username: ")
	password := prompt(scanner, "Admin password: ")
	if !s.gate.Login(username, password) {
		fmt.Println("Invalid username or password")
		return
	}
	fmt.Println("Admin views unlocked")
}

func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

func displayName(snapshot session.Snapshot) string {
	if snapshot.Name != "" {
		return snapshot.Name
	}
	return snapshot.Mobile
}

// reportError tailors the message to the failure shape: unreachable server,
// an error envelope, or a non-JSON response from a broken deployment.
func reportError(err error) {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrUnreachable):
		fmt.Println("Cannot reach the server. Check your connection and try again.")
	case errors.Is(err, client.ErrBadDeployment):
		fmt.Println("The server answered with something unexpected. The deployment may be misconfigured.")
	case errors.As(err, &apiErr):
		fmt.Println(apiErr.Message)
	default:
		fmt.Printf("Request failed: %v\n", err)
	}
}
