// Command demo runs the sample ledger sequence and prints the state around it.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/simaogato/inventory-ledger/internal/domain"
	"github.com/simaogato/inventory-ledger/internal/usecase/ledger"
)

func main() {
	manager := ledger.NewManager(domain.ReporterFunc(func(s domain.Status) {
		fmt.Println(s.Message)
	}))
	manager.SetWarningLogger(log.New(os.Stderr, "", 0).Printf)

	iphone := domain.NewItem("101", "iPhone 15")
	ivan := domain.NewStorage("MSK-01", "Ivan Ivanov")
	petr := domain.NewStorage("SPB-02", "Petr Petrov")

	manager.Execute(domain.AddItem{}, domain.AddArgs(iphone, ivan, 50))

	priceCmd := domain.NewAdjustPrice()
	manager.Execute(priceCmd, domain.PriceArgs(iphone, domain.MustMoney("99000.50")))

	manager.Execute(domain.TransferItem{}, domain.TransferArgs(iphone, ivan, petr, 10))

	fmt.Println("Current state:")
	fmt.Println(ivan)
	fmt.Println(petr)
	fmt.Println(iphone)

	fmt.Println("Undoing the last two operations:")
	manager.Undo()
	manager.Undo()

	fmt.Println("Final state:")
	fmt.Println(ivan)
	fmt.Println(iphone)
}
