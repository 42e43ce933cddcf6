package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
)

func parseUintSlice(raw []string) ([]uint64, error) {
	parsed := make([]uint64, 0, len(raw))
	for _, s := range raw {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, v)
	}
	return parsed, nil
}

var createtrade = cli.Command{
	Name:  "createtrade",
	Usage: "open a new trade between a set of participants",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "participant",
			Usage: "account id of a participant, repeat for each one",
		},
		&cli.StringFlag{
			Name: "manifest",
			Usage: "JSON array of committed assets, each with kind, " +
				"reference, unit_id, quantity, source and destination",
		},
		&cli.Int64Flag{
			Name:  "duration",
			Usage: "trade duration in seconds, 0 for the default",
		},
	},
	Action: createTradeAction,
}

func createTradeAction(ctx *cli.Context) error {
	var manifest []map[string]interface{}
	if err := json.Unmarshal([]byte(ctx.String("manifest")), &manifest); err != nil {
		return fmt.Errorf("invalid manifest: %w", err)
	}

	reply := struct {
		TradeId uint64 `json:"trade_id"`
	}{}
	if err := doRequest("POST", "/trades", map[string]interface{}{
		"participants":     ctx.StringSlice("participant"),
		"manifest":         manifest,
		"duration_seconds": ctx.Int64("duration"),
	}, &reply); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("trade id:", reply.TradeId)
	return nil
}

var deposit = cli.Command{
	Name:  "deposit",
	Usage: "deposit a committed asset into a trade",
	Flags: []cli.Flag{
		&cli.Uint64Flag{Name: "trade_id", Usage: "the id of the trade"},
		&cli.StringFlag{
			Name:  "kind",
			Usage: "asset kind: fungible, unique, semifungible or legacy",
		},
		&cli.StringFlag{Name: "reference", Usage: "the asset reference"},
		&cli.Uint64Flag{Name: "unit_id", Usage: "the unit id for non fungible kinds"},
		&cli.Uint64Flag{Name: "quantity", Usage: "the amount for fungible kinds"},
		&cli.StringFlag{
			Name:  "recipient",
			Usage: "optional check against the committed destination",
		},
		&cli.Uint64Flag{
			Name:  "fee_payment",
			Usage: "the flat fee paid along with the first deposit",
		},
	},
	Action: depositAction,
}

func depositAction(ctx *cli.Context) error {
	caller, err := getCaller()
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/trades/%d/deposit", ctx.Uint64("trade_id"))
	if err := doRequest("POST", path, map[string]interface{}{
		"caller":      caller,
		"kind":        ctx.String("kind"),
		"reference":   ctx.String("reference"),
		"unit_id":     ctx.Uint64("unit_id"),
		"quantity":    ctx.Uint64("quantity"),
		"recipient":   ctx.String("recipient"),
		"fee_payment": ctx.Uint64("fee_payment"),
	}, nil); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("asset deposited")
	return nil
}

var batchdeposit = cli.Command{
	Name:  "batchdeposit",
	Usage: "deposit up to 20 committed assets into a trade at once",
	Flags: []cli.Flag{
		&cli.Uint64Flag{Name: "trade_id", Usage: "the id of the trade"},
		&cli.StringSliceFlag{
			Name:  "kind",
			Usage: "asset kind of each item, in order",
		},
		&cli.StringSliceFlag{
			Name:  "reference",
			Usage: "asset reference of each item, in order",
		},
		&cli.StringSliceFlag{
			Name:  "unit_id",
			Usage: "unit id of each item, in order",
		},
		&cli.StringSliceFlag{
			Name:  "quantity",
			Usage: "amount of each item, in order",
		},
		&cli.Uint64Flag{
			Name:  "fee_payment",
			Usage: "the flat fee paid along with the first deposit",
		},
	},
	Action: batchDepositAction,
}

func batchDepositAction(ctx *cli.Context) error {
	caller, err := getCaller()
	if err != nil {
		return err
	}

	unitIds, err := parseUintSlice(ctx.StringSlice("unit_id"))
	if err != nil {
		return fmt.Errorf("invalid unit_id: %w", err)
	}
	quantities, err := parseUintSlice(ctx.StringSlice("quantity"))
	if err != nil {
		return fmt.Errorf("invalid quantity: %w", err)
	}

	path := fmt.Sprintf("/trades/%d/deposits", ctx.Uint64("trade_id"))
	if err := doRequest("POST", path, map[string]interface{}{
		"caller":      caller,
		"kinds":       ctx.StringSlice("kind"),
		"references":  ctx.StringSlice("reference"),
		"unit_ids":    unitIds,
		"quantities":  quantities,
		"fee_payment": ctx.Uint64("fee_payment"),
	}, nil); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("assets deposited")
	return nil
}

var confirm = cli.Command{
	Name:   "confirm",
	Usage:  "confirm a trade after depositing all of your assets",
	Flags:  []cli.Flag{&cli.Uint64Flag{Name: "trade_id", Usage: "the id of the trade"}},
	Action: callerActionFor("confirm", "trade confirmed"),
}

var cancel = cli.Command{
	Name:   "cancel",
	Usage:  "cancel an open trade and refund all deposits",
	Flags:  []cli.Flag{&cli.Uint64Flag{Name: "trade_id", Usage: "the id of the trade"}},
	Action: callerActionFor("cancel", "trade cancelled"),
}

var reclaim = cli.Command{
	Name:   "reclaim",
	Usage:  "reclaim your deposits from an expired trade",
	Flags:  []cli.Flag{&cli.Uint64Flag{Name: "trade_id", Usage: "the id of the trade"}},
	Action: callerActionFor("reclaim", "assets reclaimed"),
}

func callerActionFor(op, confirmation string) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		caller, err := getCaller()
		if err != nil {
			return err
		}

		path := fmt.Sprintf("/trades/%d/%s", ctx.Uint64("trade_id"), op)
		if err := doRequest("POST", path, map[string]interface{}{
			"caller": caller,
		}, nil); err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(confirmation)
		return nil
	}
}

var tradestatus = cli.Command{
	Name:   "tradestatus",
	Usage:  "get the status of a trade",
	Flags:  []cli.Flag{&cli.Uint64Flag{Name: "trade_id", Usage: "the id of the trade"}},
	Action: tradeStatusAction,
}

func tradeStatusAction(ctx *cli.Context) error {
	var reply interface{}
	path := fmt.Sprintf("/trades/%d/status", ctx.Uint64("trade_id"))
	if err := doRequest("GET", path, nil, &reply); err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}

var tradeinfo = cli.Command{
	Name:   "tradeinfo",
	Usage:  "get the full info of a trade, manifest included",
	Flags:  []cli.Flag{&cli.Uint64Flag{Name: "trade_id", Usage: "the id of the trade"}},
	Action: tradeInfoAction,
}

func tradeInfoAction(ctx *cli.Context) error {
	var reply interface{}
	path := fmt.Sprintf("/trades/%d", ctx.Uint64("trade_id"))
	if err := doRequest("GET", path, nil, &reply); err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}

var tradestatuses = cli.Command{
	Name:  "tradestatuses",
	Usage: "get the status of up to 10 trades at once",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "trade_id",
			Usage: "the id of a trade, repeat for each one",
		},
	},
	Action: tradeStatusesAction,
}

func tradeStatusesAction(ctx *cli.Context) error {
	var reply interface{}
	path := "/trades/statuses?ids=" + strings.Join(ctx.StringSlice("trade_id"), ",")
	if err := doRequest("GET", path, nil, &reply); err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}
