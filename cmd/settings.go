package cmd

import (
	"context"
	"encoding/json"
	"io"
	"net/url"

	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"github.com/termii-notify/smsadmin/app"
	"github.com/termii-notify/smsadmin/internal/form"
	"github.com/termii-notify/smsadmin/internal/session"
	"github.com/termii-notify/smsadmin/internal/shop"
)

var (
	shopFlag = &cli.StringFlag{
		Name:     "shop",
		Usage:    "the shop domain, with or without the .myshopify.com suffix.",
		Aliases:  []string{"s"},
		Required: true,
	}
	settingsCmd = &cli.Command{
		Name:  "settings",
		Usage: "Show or change the settings of a shop on the backend.",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the settings of a shop.",
				Flags:  []cli.Flag{shopFlag},
				Action: settingsShowAction,
			},
			{
				Name:  "save",
				Usage: "Save the message templates of a shop. Omitted templates keep their current value.",
				Flags: []cli.Flag{
					shopFlag,
					&cli.StringFlag{
						Name:  "order-confirmation",
						Usage: "the order confirmation template.",
					},
					&cli.StringFlag{
						Name:  "fulfillment",
						Usage: "the fulfillment template.",
					},
				},
				Action: settingsSaveAction,
			},
		},
	}
)

// settingsOutput is the printed form of a form.View.
type settingsOutput struct {
	Shop                      string `json:"shop"`
	TermiiConfigured          bool   `json:"termii_configured"`
	TermiiSenderID            string `json:"termii_sender_id"`
	OrderConfirmationTemplate string `json:"order_confirmation_template"`
	FulfillmentTemplate       string `json:"fulfillment_template"`
	Error                     string `json:"error,omitempty"`
	Saved                     bool   `json:"saved,omitempty"`
}

func printView(w io.Writer, domain string, view form.View) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(settingsOutput{
		Shop:                      domain,
		TermiiConfigured:          view.Configured,
		TermiiSenderID:            view.SenderID,
		OrderConfirmationTemplate: view.Draft.OrderConfirmationTemplate,
		FulfillmentTemplate:       view.Draft.FulfillmentTemplate,
		Error:                     view.Error,
		Saved:                     view.Success,
	})
}

// hostForShop builds the host context of a command line invocation, which
// only knows the shop from its flag.
func hostForShop(ctx *cli.Context) (string, session.HostContext) {
	domain := shop.Normalize(ctx.String("shop"))

	return domain, session.HostContext{
		Query: url.Values{shop.QueryParam: []string{domain}},
	}
}

// execForm runs fn with the form of the shop given on the command line.
func execForm(ctx *cli.Context, fn func(context.Context, string, session.HostContext, *form.Controller) error) error {
	shell, err := app.New(ctx)
	if err != nil {
		return err
	}

	var forms *form.Registry

	return shell.Exec(ctx.Context, func(c context.Context) error {
		domain, host := hostForShop(ctx)

		f, release := forms.Open(domain)
		defer release()

		return fn(c, domain, host, f)
	}, fx.Populate(&forms))
}

func settingsShowAction(ctx *cli.Context) error {
	return execForm(ctx, func(c context.Context, domain string, host session.HostContext, f *form.Controller) error {
		loadErr := f.Load(c, host)

		if err := printView(ctx.App.Writer, domain, f.Snapshot()); err != nil {
			return err
		}

		return loadErr
	})
}

func settingsSaveAction(ctx *cli.Context) error {
	return execForm(ctx, func(c context.Context, domain string, host session.HostContext, f *form.Controller) error {
		if err := f.Load(c, host); err != nil {
			_ = printView(ctx.App.Writer, domain, f.Snapshot())
			return err
		}

		draft := f.Snapshot().Draft
		if ctx.IsSet("order-confirmation") {
			draft.OrderConfirmationTemplate = ctx.String("order-confirmation")
		}
		if ctx.IsSet("fulfillment") {
			draft.FulfillmentTemplate = ctx.String("fulfillment")
		}
		f.SetDraft(draft)

		saveErr := f.Save(c, host)

		if err := printView(ctx.App.Writer, domain, f.Snapshot()); err != nil {
			return err
		}

		return saveErr
	})
}

func init() {
	rootApp.Commands = append(rootApp.Commands, settingsCmd)
}
