// @title        Multichain Wallet API
// @version      1.0
// @description  Local custody of EVM and Solana wallets with a transaction ledger
// @BasePath     /
package main

import (
	_ "github.com/AlexZinkM/multichain-wallet/docs"
)

func main() {
	Execute()
}
