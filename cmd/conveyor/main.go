// A small producer/consumer demo over the conveyor line.
package main

import (
	"flag"
	"fmt"
	"sync"
	"time"

	"github.com/strelets/chatd/internal/conveyor"
)

func main() {
	items := flag.Int("items", 20, "items to produce")
	capacity := flag.Int("capacity", 10, "line capacity")
	produceDelay := flag.Duration("produce-delay", 2*time.Second, "pause after each produced item")
	consumeDelay := flag.Duration("consume-delay", 3*time.Second, "pause after each consumed item")
	flag.Parse()

	line := conveyor.New(*capacity)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 1; i <= *items; i++ {
			line.Put(i)
			fmt.Printf("Producer added item %d. Line size: %d\n", i, line.Len())
			time.Sleep(*produceDelay)
		}
	}()

	go func() {
		defer wg.Done()
		for consumed := 0; consumed < *items; consumed++ {
			item := line.Take()
			fmt.Printf("Consumer took item %d. Line size: %d\n", item, line.Len())
			time.Sleep(*consumeDelay)
		}
	}()

	wg.Wait()
	fmt.Println("Production and consumption completed.")
}
