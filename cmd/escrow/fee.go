package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var fee = cli.Command{
	Name:  "fee",
	Usage: "manage the flat fee settings and the accumulated balance",
	Subcommands: []*cli.Command{
		{
			Name:  "updaterate",
			Usage: "update the flat per-participant fee",
			Flags: []cli.Flag{
				&cli.Uint64Flag{Name: "amount", Usage: "the new flat fee"},
			},
			Action: updateFeeRateAction,
		},
		{
			Name:  "updaterecipient",
			Usage: "update the account entitled to withdraw fees",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "recipient", Usage: "the new fee recipient"},
			},
			Action: updateFeeRecipientAction,
		},
		{
			Name:  "withdraw",
			Usage: "withdraw part of the accumulated fee balance",
			Flags: []cli.Flag{
				&cli.Uint64Flag{Name: "amount", Usage: "the amount to withdraw"},
			},
			Action: withdrawFeesAction,
		},
		{
			Name:   "info",
			Usage:  "print the fee rate, recipient and accumulated balance",
			Action: feeInfoAction,
		},
	},
}

func updateFeeRateAction(ctx *cli.Context) error {
	caller, err := getCaller()
	if err != nil {
		return err
	}

	if err := doRequest("PUT", "/fees/rate", map[string]interface{}{
		"caller": caller,
		"amount": ctx.Uint64("amount"),
	}, nil); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("flat fee updated")
	return nil
}

func updateFeeRecipientAction(ctx *cli.Context) error {
	caller, err := getCaller()
	if err != nil {
		return err
	}

	if err := doRequest("PUT", "/fees/recipient", map[string]interface{}{
		"caller":    caller,
		"recipient": ctx.String("recipient"),
	}, nil); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("fee recipient updated")
	return nil
}

func withdrawFeesAction(ctx *cli.Context) error {
	caller, err := getCaller()
	if err != nil {
		return err
	}

	if err := doRequest("POST", "/fees/withdraw", map[string]interface{}{
		"caller": caller,
		"amount": ctx.Uint64("amount"),
	}, nil); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("fees withdrawn")
	return nil
}

func feeInfoAction(ctx *cli.Context) error {
	var reply interface{}
	if err := doRequest("GET", "/fees", nil, &reply); err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}
