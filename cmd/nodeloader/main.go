package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/danilovkiri/dk_go_cryptochain/internal/nodeclient"
	"github.com/danilovkiri/dk_go_cryptochain/internal/wallet"
)

func main() {
	a := flag.String("a", "http://localhost:5000", "Node address")
	recipient := flag.String("r", "", "Recipient address, a fresh wallet when empty")
	iterations := flag.Int("n", 1, "Number of transact-and-mine rounds")
	flag.Parse()

	client := nodeclient.New(*a, time.Minute)
	ctx := context.Background()

	to := *recipient
	if to == "" {
		w, err := wallet.New(nil)
		if err != nil {
			log.Fatal(err)
		}
		to = w.Address
	}

	for i := 0; i < *iterations; i++ {
		// Performing transact loading
		log.Println("Performing transact loading")
		for _, amount := range []int64{21, 22} {
			transaction, err := client.Transact(ctx, to, amount)
			if err != nil {
				log.Fatal(err)
			}
			log.Printf("transaction %s: %v", transaction.ID, transaction.Output)
		}
		transactions, err := client.Transactions(ctx)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("transaction pool holds %d transactions", len(transactions))

		// Performing mine loading
		log.Println("Performing mine loading")
		block, err := client.Mine(ctx)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("mined block %s with difficulty %d", block.Hash, block.Difficulty)
	}

	info, err := client.WalletInfo(ctx)
	if err != nil {
		log.Fatal(err)
	}
	length, err := client.BlockchainLength(ctx)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("wallet %s holds %d, chain length is %d", info.Address, info.Balance, length)
}
