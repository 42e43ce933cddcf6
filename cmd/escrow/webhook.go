package main

import (
	"fmt"
	"net/url"

	"github.com/urfave/cli/v2"
)

var addwebhook = cli.Command{
	Name:  "addwebhook",
	Usage: "add a webhook registered for some event",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "endpoint",
			Usage: "the endpoint where to notify the webhook",
			Value: "",
		},
		&cli.StringFlag{
			Name:  "secret",
			Usage: "the eventual secret to authenticate requests",
			Value: "",
		},
		&cli.StringFlag{
			Name:  "topic",
			Usage: "the topic for which the webhook gets notified, * for all",
			Value: "*",
		},
	},
	Action: addWebhookAction,
}

func addWebhookAction(ctx *cli.Context) error {
	reply := struct {
		Id string `json:"id"`
	}{}
	if err := doRequest("POST", "/webhooks", map[string]interface{}{
		"topic":    ctx.String("topic"),
		"endpoint": ctx.String("endpoint"),
		"secret":   ctx.String("secret"),
	}, &reply); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("hook id:", reply.Id)
	return nil
}

var removewebhook = cli.Command{
	Name:  "removewebhook",
	Usage: "remove a webhook",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "id",
			Usage: "the id of the webhook to remove",
		},
		&cli.StringFlag{
			Name:  "topic",
			Usage: "the topic the webhook was registered for",
			Value: "*",
		},
	},
	Action: removeWebhookAction,
}

func removeWebhookAction(ctx *cli.Context) error {
	path := fmt.Sprintf(
		"/webhooks/%s?topic=%s",
		ctx.String("id"), url.QueryEscape(ctx.String("topic")),
	)
	if err := doRequest("DELETE", path, nil, nil); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("webhook removed")
	return nil
}
