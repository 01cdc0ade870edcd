package main

import (
	"bufio"
	"crypto/rand"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

type client struct {
	baseURL  string
	adminKey string
	http     *http.Client
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "gateway base URL")
	adminKey := flag.String("admin-key", os.Getenv("ADMIN_KEY"), "admin key (defaults to ADMIN_KEY env)")
	flag.Parse()

	if *adminKey == "" {
		fmt.Println("admin key is required (pass -admin-key or set ADMIN_KEY)")
		os.Exit(1)
	}

	cli := &client{
		baseURL:  strings.TrimRight(*baseURL, "/"),
		adminKey: *adminKey,
		http:     &http.Client{Timeout: 10 * time.Second},
	}

	fmt.Println("========================================")
	fmt.Println(" License Gateway Administration Tool")
	fmt.Println("========================================")

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Println("\nOptions:")
		fmt.Println("  1. Create account")
		fmt.Println("  2. List accounts")
		fmt.Println("  3. Show account detail")
		fmt.Println("  4. Delete account")
		fmt.Println("  5. Create license")
		fmt.Println("  6. Delete license")
		fmt.Println("  7. Generate random license key")
		fmt.Println("  8. Exit")
		fmt.Print("\nSelect option: ")

		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(input)

		switch input {
		case "1":
			cli.createAccount(reader)
		case "2":
			cli.listAccounts()
		case "3":
			cli.showAccountDetail(reader)
		case "4":
			cli.deleteAccount(reader)
		case "5":
			cli.createLicense(reader)
		case "6":
			cli.deleteLicense(reader)
		case "7":
			generateKey()
		case "8":
			fmt.Println("Goodbye!")
			os.Exit(0)
		default:
			fmt.Println("Invalid option")
		}
	}
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Printf("%s: ", label)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// call performs one gateway request and pretty-prints the JSON response.
func (c *client) call(method, path string, params map[string]string) {
	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}

	req, err := http.NewRequest(method, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		fmt.Printf("request failed: %v\n", err)
		return
	}

	resp, err := c.http.Do(req)
	if err != nil {
		fmt.Printf("request failed: %v\n", err)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Printf("failed to read response: %v\n", err)
		return
	}

	var pretty map[string]interface{}
	if err := json.Unmarshal(body, &pretty); err != nil {
		fmt.Printf("HTTP %d: %s\n", resp.StatusCode, string(body))
		return
	}

	formatted, _ := json.MarshalIndent(pretty, "", "  ")
	fmt.Printf("HTTP %d\n%s\n", resp.StatusCode, string(formatted))
}

func (c *client) createAccount(reader *bufio.Reader) {
	fmt.Println("\n--- Create Account ---")
	username := prompt(reader, "Username")
	password := prompt(reader, "Password")
	expiration := prompt(reader, "Expiration date (YYYY-MM-DD)")
	maxUsers := prompt(reader, "Max devices (default 1)")
	if maxUsers == "" {
		maxUsers = "1"
	}

	c.call(http.MethodPost, "/CreateAccount", map[string]string{
		"Username":       username,
		"Password":       password,
		"ExpirationDate": expiration,
		"MaxUser":        maxUsers,
		"Key":            c.adminKey,
	})
}

func (c *client) listAccounts() {
	fmt.Println("\n--- Accounts ---")
	c.call(http.MethodGet, "/ShowAvailableAccounts", map[string]string{
		"Key": c.adminKey,
	})
}

func (c *client) showAccountDetail(reader *bufio.Reader) {
	fmt.Println("\n--- Account Detail ---")
	username := prompt(reader, "Username")
	password := prompt(reader, "Password")

	c.call(http.MethodGet, "/ShowAccountDetail", map[string]string{
		"Username": username,
		"Password": password,
		"Key":      c.adminKey,
	})
}

func (c *client) deleteAccount(reader *bufio.Reader) {
	fmt.Println("\n--- Delete Account ---")
	name := prompt(reader, "Account name (e.g. Account1)")

	c.call(http.MethodDelete, "/delete", map[string]string{
		"AccountName": name,
		"Key":         c.adminKey,
	})
}

func (c *client) createLicense(reader *bufio.Reader) {
	fmt.Println("\n--- Create License ---")
	key := prompt(reader, "License key (empty to generate)")
	if key == "" {
		key = randomAlphanumeric(20)
		fmt.Printf("Generated key: %s\n", key)
	}
	expiration := prompt(reader, "Expiration date (YYYY-MM-DD)")
	maxUsers := prompt(reader, "Max users (default 1, ALWAYS forces 1)")
	if maxUsers == "" {
		maxUsers = "1"
	}

	c.call(http.MethodPost, "/CreateLicense", map[string]string{
		"Licence":        key,
		"ExpirationDate": expiration,
		"MAXUSER":        maxUsers,
		"AdminKey":       c.adminKey,
	})
}

func (c *client) deleteLicense(reader *bufio.Reader) {
	fmt.Println("\n--- Delete License ---")
	key := prompt(reader, "License key")

	c.call(http.MethodDelete, "/DeleteLicense", map[string]string{
		"Licence": key,
		"Key":     c.adminKey,
	})
}

func generateKey() {
	key := randomAlphanumeric(20)
	fmt.Println("\n========================================")
	fmt.Printf("  License Key: %s\n", key)
	fmt.Printf("  Generated:   %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Println("========================================")
}

func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			panic(err)
		}
		b[i] = charset[n.Int64()]
	}
	return string(b)
}
