package cmdshared

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Confirm asks a yes/no question on stdin. An empty answer picks defaultYes.
func Confirm(prompt string, defaultYes bool) bool {
	if defaultYes {
		fmt.Print(prompt + " [Y/n]: ")
	} else {
		fmt.Print(prompt + " [y/N]: ")
	}
	if viper.GetBool("non-interactive") {
		fmt.Println("Y (non-interactive mode)")
		return true
	}
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		Exitf("Failed to prompt user: %v\n", err)
	}

	ansNormal := strings.ToLower(strings.TrimSpace(answer))
	if ansNormal == "" {
		return defaultYes
	}
	return ansNormal[0] == 'y'
}
