package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/adrianliechti/speechbridge/pkg/client"
)

func main() {
	urlFlag := flag.String("url", "http://localhost:8080", "server url")
	tokenFlag := flag.String("token", "", "server token")

	keyFlag := flag.String("key", os.Getenv("FISH_API_KEY"), "fish audio api key")
	referenceFlag := flag.String("reference", "", "voice reference id")

	modelFlag := flag.String("model", "", "model id")
	formatFlag := flag.String("format", "", "audio format")

	outputFlag := flag.String("output", "", "output file")
	greetFlag := flag.String("greet", "", "greet name and exit")

	flag.Parse()

	ctx := context.Background()

	options := []client.RequestOption{}

	if *tokenFlag != "" {
		options = append(options, client.WithToken(*tokenFlag))
	}

	c := client.New(*urlFlag, options...)

	if *greetFlag != "" {
		greeting, err := c.Greetings.New(ctx, *greetFlag)

		if err != nil {
			fail(err)
		}

		fmt.Println(greeting)
		return
	}

	text := strings.Join(flag.Args(), " ")

	if text == "" {
		data, err := io.ReadAll(os.Stdin)

		if err != nil {
			fail(err)
		}

		text = strings.TrimSpace(string(data))
	}

	result, err := c.Syntheses.New(ctx, client.SynthesizeRequest{
		Text: text,

		APIKey:      *keyFlag,
		ReferenceID: *referenceFlag,

		Model:  *modelFlag,
		Format: *formatFlag,
	})

	if err != nil {
		fail(err)
	}

	audio, err := client.Audio(result)

	if err != nil {
		fail(err)
	}

	output := *outputFlag

	if output == "" {
		format := *formatFlag

		if format == "" {
			format = "mp3"
		}

		output = "speech." + format
	}

	if err := os.WriteFile(output, audio, 0644); err != nil {
		fail(err)
	}

	fmt.Fprintf(os.Stderr, "wrote %d bytes to %s\n", len(audio), output)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
