package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// VerifyRequest is the POST /api/payment/verify-payment body
type VerifyRequest struct {
	InvoiceID    string `json:"invoice_id"`
	FromRedirect bool   `json:"from_redirect"`
}

// VerifyResponse is the subset of the verify envelope the load test inspects
type VerifyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// BalanceResponse mirrors GET /api/user/:userId/balance
type BalanceResponse struct {
	Balance      string `json:"balance"`
	BalanceUSD   string `json:"balanceUSD"`
	TotalDeposit string `json:"total_deposit"`
}

// TestResult contains metrics for a single request
type TestResult struct {
	Status       string
	Message      string
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests  int
	TotalTime      time.Duration
	ResponseTimes  []time.Duration
	StatusCounts   map[string]int
	MessageCounts  map[string]int
	HTTPCodeCounts map[int]int
	ErrorCounts    map[string]int
	Lock           sync.Mutex
}

func main() {
	concurrency := flag.Int("c", 10, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 50, "Total number of verify requests to send")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	invoiceID := flag.String("invoice", "", "Invoice ID to verify (required)")
	userID := flag.Uint64("user", 0, "Owner of the invoice; enables the balance check")
	fromRedirect := flag.Bool("redirect", false, "Send from_redirect=true (enables gateway retries)")
	delayMs := flag.Int("delay", 0, "Delay between requests per worker in milliseconds")
	flag.Parse()

	if *invoiceID == "" {
		fmt.Fprintln(os.Stderr, "-invoice is required")
		os.Exit(2)
	}

	client := &http.Client{Timeout: 30 * time.Second}

	var before *BalanceResponse
	if *userID > 0 {
		b, err := fetchBalance(client, *baseURL, *userID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read starting balance: %v\n", err)
			os.Exit(1)
		}
		before = b
	}

	fmt.Printf("Verifying invoice %s with %d requests over %d goroutines (redirect=%v)\n",
		*invoiceID, *totalRequests, *concurrency, *fromRedirect)

	stats := &TestStats{
		TotalRequests:  *totalRequests,
		ResponseTimes:  make([]time.Duration, 0, *totalRequests),
		StatusCounts:   make(map[string]int),
		MessageCounts:  make(map[string]int),
		HTTPCodeCounts: make(map[int]int),
		ErrorCounts:    make(map[string]int),
	}

	jobs := make(chan int, *totalRequests)
	for i := 0; i < *totalRequests; i++ {
		jobs <- i
	}
	close(jobs)

	body, _ := json.Marshal(VerifyRequest{InvoiceID: *invoiceID, FromRedirect: *fromRedirect})

	startTime := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				if *delayMs > 0 {
					time.Sleep(time.Duration(*delayMs) * time.Millisecond)
				}
				record(stats, verify(client, *baseURL, body))
			}
		}()
	}
	wg.Wait()
	stats.TotalTime = time.Since(startTime)

	printResults(stats)

	if before != nil {
		after, err := fetchBalance(client, *baseURL, *userID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read final balance: %v\n", err)
			os.Exit(1)
		}
		printBalanceDelta(before, after)
	}
}

func verify(client *http.Client, baseURL string, body []byte) TestResult {
	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/payment/verify-payment", bytes.NewReader(body))
	if err != nil {
		return TestResult{Error: err}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := client.Do(req)
	result := TestResult{ResponseTime: time.Since(start)}
	if err != nil {
		result.Error = err
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	var vr VerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		result.Error = fmt.Errorf("decode response: %w", err)
		return result
	}
	result.Status = vr.Status
	result.Message = vr.Message
	return result
}

func record(stats *TestStats, r TestResult) {
	stats.Lock.Lock()
	defer stats.Lock.Unlock()

	stats.ResponseTimes = append(stats.ResponseTimes, r.ResponseTime)
	if r.Error != nil {
		stats.ErrorCounts[r.Error.Error()]++
		return
	}
	stats.HTTPCodeCounts[r.StatusCode]++
	stats.StatusCounts[r.Status]++
	stats.MessageCounts[r.Message]++
}

func fetchBalance(client *http.Client, baseURL string, userID uint64) (*BalanceResponse, error) {
	resp, err := client.Get(fmt.Sprintf("%s/api/user/%d/balance", baseURL, userID))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP status code %d", resp.StatusCode)
	}
	var b BalanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

func printResults(stats *TestStats) {
	sorted := make([]time.Duration, len(stats.ResponseTimes))
	copy(sorted, stats.ResponseTimes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	pct := func(p int) time.Duration {
		if len(sorted) == 0 {
			return 0
		}
		return sorted[len(sorted)*p/100]
	}

	fmt.Println("\n================= VERIFY LOAD RESULTS =================")
	fmt.Printf("Total Requests:   %d\n", stats.TotalRequests)
	fmt.Printf("Total Test Time:  %.2f seconds\n", stats.TotalTime.Seconds())
	fmt.Printf("Throughput:       %.2f req/s\n", float64(stats.TotalRequests)/stats.TotalTime.Seconds())
	fmt.Printf("P50 / P95 / P99:  %v / %v / %v\n", pct(50), pct(95), pct(99))

	fmt.Println("\n----------------- RESPONSE STATUS -----------------")
	for status, count := range stats.StatusCounts {
		fmt.Printf("%-10s: %d\n", status, count)
	}
	for code, count := range stats.HTTPCodeCounts {
		fmt.Printf("HTTP %d  : %d\n", code, count)
	}

	fmt.Println("\n----------------- MESSAGES -----------------")
	for msg, count := range stats.MessageCounts {
		fmt.Printf("%-40s: %d\n", msg, count)
	}

	if len(stats.ErrorCounts) > 0 {
		fmt.Println("\n----------------- ERRORS -----------------")
		for msg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d\n", msg, count)
		}
	}
}

func printBalanceDelta(before, after *BalanceResponse) {
	delta := func(a, b string) decimal.Decimal {
		x, _ := decimal.NewFromString(a)
		y, _ := decimal.NewFromString(b)
		return y.Sub(x)
	}

	depositDelta := delta(before.TotalDeposit, after.TotalDeposit)

	fmt.Println("\n----------------- BALANCE CHECK -----------------")
	fmt.Printf("balance:        %s -> %s (+%s)\n", before.Balance, after.Balance, delta(before.Balance, after.Balance))
	fmt.Printf("balanceUSD:     %s -> %s (+%s)\n", before.BalanceUSD, after.BalanceUSD, delta(before.BalanceUSD, after.BalanceUSD))
	fmt.Printf("total_deposit:  %s -> %s (+%s)\n", before.TotalDeposit, after.TotalDeposit, depositDelta)
	fmt.Println("Compare total_deposit delta with the invoice amount: a single credit means it matches exactly once.")
}
