package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/miromero13/spos-terminal/internal/api"
	"github.com/miromero13/spos-terminal/internal/auth"
	"github.com/miromero13/spos-terminal/internal/catalog"
	"github.com/miromero13/spos-terminal/internal/config"
	"github.com/miromero13/spos-terminal/internal/model"
	"github.com/miromero13/spos-terminal/internal/register"
	"github.com/miromero13/spos-terminal/internal/report"
	"github.com/miromero13/spos-terminal/internal/sale"
	"github.com/miromero13/spos-terminal/internal/ticket"
)

const usage = `usage: terminal <command>

commands:
  status                 show the open register summary
  open <amount> [obs]    open a register with the given initial balance
  close                  close the open register and print the close report
  products [search]      list the product catalog
  sell <paid> <id>...    sell the given products (repeat an id to add units)
  export-sales <file>    export the sales history to an Excel workbook
  export-cash <file>     export the register history to a PDF report
`

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	client := api.NewClient(api.Options{
		BaseURL: cfg.APIURL,
		Timeout: time.Duration(cfg.HTTPTimeoutSeconds) * time.Second,
	}, log.Logger)

	ctx := context.Background()

	authSvc := auth.NewService(client, log.Logger)
	operator, err := authSvc.Login(ctx, cfg.Email, cfg.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("login failed")
	}

	mgr := register.NewManager(client, log.Logger)
	if err := mgr.Refresh(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load register state")
	}

	switch os.Args[1] {
	case "status":
		runStatus(ctx, mgr, operator)
	case "open":
		runOpen(ctx, mgr, os.Args[2:])
	case "close":
		runClose(ctx, mgr)
	case "products":
		runProducts(ctx, client, os.Args[2:])
	case "sell":
		runSell(ctx, client, cfg, mgr, operator, os.Args[2:])
	case "export-sales":
		runExportSales(ctx, client, cfg, os.Args[2:])
	case "export-cash":
		runExportCash(ctx, client, cfg, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func runStatus(ctx context.Context, mgr *register.Manager, operator auth.Operator) {
	if !mgr.IsOpen() {
		fmt.Printf("Caja cerrada — %s debe abrir la caja para realizar ventas.\n", operator.Name)
		return
	}
	s, err := mgr.Summary(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to fetch register summary")
	}
	printSummary(s)
}

func runOpen(ctx context.Context, mgr *register.Manager, args []string) {
	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	amount, err := decimal.NewFromString(args[0])
	if err != nil {
		log.Fatal().Err(err).Msg("invalid initial balance")
	}
	observations := ""
	if len(args) > 1 {
		observations = args[1]
	}
	cash, err := mgr.Open(ctx, amount, observations)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open register")
	}
	fmt.Printf("Caja abierta con éxito (id %s, monto inicial Bs. %s)\n", cash.ID, cash.InitialBalance.StringFixed(2))
}

func runClose(ctx context.Context, mgr *register.Manager) {
	s, err := mgr.Close(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to close register")
	}
	fmt.Println("Caja cerrada con éxito")
	printSummary(s)
}

func runProducts(ctx context.Context, client *api.Client, args []string) {
	search := ""
	if len(args) > 0 {
		search = args[0]
	}
	cat := catalog.New(client, log.Logger)
	products, err := cat.Products(ctx, search)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to fetch products")
	}
	for _, p := range products {
		fmt.Printf("%-36s  %-30s  Bs. %8s  stock %d\n", p.ID, p.Name, p.SalePrice.StringFixed(2), p.Stock)
	}
}

func runSell(ctx context.Context, client *api.Client, cfg *config.Config, mgr *register.Manager, operator auth.Operator, args []string) {
	if len(args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	paid, err := decimal.NewFromString(args[0])
	if err != nil {
		log.Fatal().Err(err).Msg("invalid paid amount")
	}

	cat := catalog.New(client, log.Logger)
	products, err := cat.Products(ctx, "")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to fetch products")
	}
	byID := make(map[string]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	composer := sale.NewComposer()
	for _, id := range args[1:] {
		p, ok := byID[id]
		if !ok {
			log.Fatal().Str("product", id).Msg("unknown product")
		}
		composer.AddOrIncrement(p)
	}
	composer.SetAmountPaid(paid)

	printer := ticket.NewPDFPrinter(ticket.Business{
		Name:    cfg.AppTitle,
		NIT:     cfg.BusinessNIT,
		Address: cfg.BusinessAddress,
		Phone:   cfg.BusinessPhone,
	}, cfg.PDFStoragePath)
	submitter := sale.NewSubmitter(client, mgr, printer, operator.Name, log.Logger)

	tk, err := submitter.Submit(ctx, composer, sale.SubmitOptions{PrintAfter: true})
	if err != nil {
		log.Fatal().Err(err).Msg("sale failed")
	}
	fmt.Printf("Venta %s registrada: total Bs. %s, pagado Bs. %s, cambio Bs. %s\n",
		tk.Code, tk.Total.StringFixed(2), tk.Paid.StringFixed(2), tk.Change.StringFixed(2))
}

func runExportSales(ctx context.Context, client *api.Client, cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	q := api.DefaultQuery()
	q.Limit = 500
	var sales []model.Sale
	if _, err := client.List(ctx, api.EndpointSales, q, &sales); err != nil {
		log.Fatal().Err(err).Msg("failed to fetch sales")
	}
	path := exportPath(cfg, args[0])
	if err := report.ExportSalesExcel(sales, true, path); err != nil {
		log.Fatal().Err(err).Msg("failed to export sales")
	}
	fmt.Printf("Reporte de ventas exportado a %s\n", path)
}

func runExportCash(ctx context.Context, client *api.Client, cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	q := api.DefaultQuery()
	q.Limit = 500
	var cashes []model.CashRegister
	if _, err := client.List(ctx, api.EndpointCash, q, &cashes); err != nil {
		log.Fatal().Err(err).Msg("failed to fetch register history")
	}
	path := exportPath(cfg, args[0])
	if err := report.ExportCashPDF(report.BuildCashHistory(cashes), path); err != nil {
		log.Fatal().Err(err).Msg("failed to export register history")
	}
	fmt.Printf("Reporte de cajas exportado a %s\n", path)
}

func exportPath(cfg *config.Config, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	_ = os.MkdirAll(cfg.ExportPath, 0755)
	return filepath.Join(cfg.ExportPath, name)
}

func printSummary(s *register.Summary) {
	fmt.Printf("Caja %s — abierta %s por %s\n", s.RegisterID, s.OpenedAt.Format("02/01/2006 15:04"), s.Operator)
	fmt.Printf("  Monto inicial:  Bs. %s\n", s.InitialBalance.StringFixed(2))
	fmt.Printf("  Ventas:         Bs. %s\n", s.SalesTotal.StringFixed(2))
	fmt.Printf("  Compras:        Bs. %s\n", s.PurchasesTotal.StringFixed(2))
	fmt.Printf("  Efectivo:       Bs. %s\n", s.CashOnHand.StringFixed(2))
}
