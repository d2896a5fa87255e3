package cli

import (
	"fmt"

	"github.com/diillson/aws-ops-scripts-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner() {
	banner := `
     ___ _      _____    ___
    /   | |    / / ___/ / _ \ ____  _____
   / /| | | /| / /\__ \ / / / / __ \/ ___/
  / ___ | |/ |/ /___/ // /_/ / /_/ (__  )
 /_/  |_|__/|__//____/ \____/ .___/____/
                           /_/
`
	orange := color.New(color.FgYellow, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(orange(banner))
	fmt.Println(blue(fmt.Sprintf("AWS Ops Scripts CLI (v%s)", version.FormatVersion())))
}
