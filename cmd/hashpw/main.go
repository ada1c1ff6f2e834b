// Command hashpw prints the bcrypt hash of a password for admin.password_hash
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/yigit/hostelsphere/internal/pkg/auth"
	"github.com/yigit/hostelsphere/internal/pkg/logger"
)

func main() {
	password := strings.Join(os.Args[1:], " ")
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			logger.Fatal().Err(err).Msg("Failed to read password")
		}
		password = strings.TrimRight(line, "\r\n")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to hash password")
	}
	fmt.Println(hash)
}
