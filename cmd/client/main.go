package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jhbvefgyehc/cloud-portfolio-tracker-sub/cmd/client/internal/portfolio"
	"github.com/jhbvefgyehc/cloud-portfolio-tracker-sub/cmd/client/internal/render"
	"github.com/jhbvefgyehc/cloud-portfolio-tracker-sub/pkg/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	logger, err := config.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	client := &http.Client{Timeout: 10 * time.Second}
	ctrl := portfolio.NewController(client, cfg.Client.APIBase, logger)

	ctx := context.Background()
	if err := ctrl.LoadAll(ctx); err != nil {
		logger.Warn("Initial load failed, starting with empty view", zap.Error(err))
	}

	fmt.Printf("Portfolio Tracker (backend %s)\n", cfg.Client.APIBase)
	fmt.Println("Commands: add SYMBOL QTY [AVG] | refresh | list | clear | quit")
	show(ctrl)

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

		switch strings.ToLower(fields[0]) {
		case "add":
			handleAdd(ctx, ctrl, fields[1:])
			show(ctrl)
		case "refresh":
			ctrl.RefreshPrices(ctx)
			show(ctrl)
		case "list":
			if err := ctrl.LoadAll(ctx); err != nil {
				fmt.Println("load failed:", err)
			}
			show(ctrl)
		case "clear":
			if err := ctrl.ClearAll(ctx); err != nil {
				fmt.Println("clear failed, keeping local data:", err)
			}
			show(ctrl)
		case "quit", "exit":
			return
		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
}

// handleAdd parses user input explicitly: a blank avg price means absent,
// not zero, and a malformed quantity is rejected instead of coerced.
func handleAdd(ctx context.Context, ctrl *portfolio.Controller, args []string) {
	if len(args) < 2 {
		fmt.Println("usage: add SYMBOL QTY [AVG]")
		return
	}

	qty, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		fmt.Println("quantity is not a number:", args[1])
		return
	}

	var avg *float64
	if len(args) >= 3 {
		v, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			fmt.Println("avg price is not a number:", args[2])
			return
		}
		avg = &v
	}

	created, err := ctrl.AddHolding(ctx, args[0], qty, avg)
	if err != nil {
		fmt.Println("add failed:", err)
		return
	}
	fmt.Printf("added #%d %s\n", created.ID, created.Symbol)
}

func show(ctrl *portfolio.Controller) {
	holdings := ctrl.Holdings()
	render.Table(os.Stdout, holdings)
	fmt.Println("Total value:", render.Total(holdings))
}
