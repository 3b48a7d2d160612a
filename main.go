package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/oasisprotocol/tools/unseed/slip10"
	"github.com/oasisprotocol/tools/unseed/slip10/nist256p1"
	"github.com/oasisprotocol/tools/unseed/slip10/secp256k1"
)

var (
	rootCmd = &cobra.Command{
		Use:   "unseed",
		Short: "Derive SLIP-0010 keys from a raw seed",
	}

	deriveCmd = &cobra.Command{
		Use:   "derive",
		Short: "derive keys for a derivation path",
		Run:   doDerive,
	}

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "generate a fresh random seed",
		Run:   doGenerate,
	}

	flagCurve   string
	flagPath    string
	flagSeed    string
	flagPublic  string
	flagIndexes string
	flagBytes   int
)

func perror(err error) {
	fmt.Printf("err: %v\n", err)
	os.Exit(1)
}

func curveByName(name string) (slip10.Curve, error) {
	switch name {
	case "secp256k1":
		return secp256k1.New(), nil
	case "nist256p1":
		return nist256p1.New(), nil
	default:
		return nil, fmt.Errorf("unknown curve: '%s'", name)
	}
}

func isSeedHex(val interface{}) error {
	s := val.(string)
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("invalid hex: %v", err)
	}
	if l := len(b); l < slip10.SeedMinSize || l > slip10.SeedMaxSize {
		return fmt.Errorf("seed must be %d to %d bytes, got %d", slip10.SeedMinSize, slip10.SeedMaxSize, l)
	}
	return nil
}

// parseIndexes parses a comma separated list of child indexes, with the
// usual "'" suffix marking hardened entries.
func parseIndexes(s string) ([]uint32, error) {
	if s == "" {
		return nil, nil
	}

	var indexes []uint32
	for _, v := range strings.Split(s, ",") {
		v = strings.TrimSpace(v)
		isHardened := strings.HasSuffix(v, "'")
		v = strings.TrimSuffix(v, "'")
		i, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid index: '%s'", v)
		}

		idx := uint32(i)
		if isHardened {
			if idx, err = slip10.NewHardenedIndex(idx); err != nil {
				return nil, err
			}
		} else if idx, err = slip10.NewNonHardenedIndex(idx); err != nil {
			return nil, err
		}
		indexes = append(indexes, idx)
	}

	return indexes, nil
}

func promptSeed() ([]byte, error) {
	// The seed is prompted for interactively because people will
	// probably splatter it into their shell history otherwise.
	var s string
	if err := survey.AskOne(&survey.Password{
		Message: "Seed (hex)",
	}, &s, survey.WithValidator(isSeedHex)); err != nil {
		return nil, err
	}
	return hex.DecodeString(s)
}

func doDerive(cmd *cobra.Command, args []string) {
	curve, err := curveByName(flagCurve)
	if err != nil {
		perror(err)
	}

	path, err := slip10.ParsePath(flagPath)
	if err != nil {
		perror(err)
	}

	indexes, err := parseIndexes(flagIndexes)
	if err != nil {
		perror(err)
	}

	if flagPublic != "" {
		derivePublic(curve, path, indexes)
		return
	}

	var seed []byte
	if flagSeed != "" {
		if err = isSeedHex(flagSeed); err != nil {
			perror(err)
		}
		seed, _ = hex.DecodeString(flagSeed)
	} else if seed, err = promptSeed(); err != nil {
		perror(err)
	}

	master, err := slip10.NewMasterKey(curve, seed)
	if err != nil {
		perror(err)
	}

	base, err := master.KeyPair().Derive(path)
	if err != nil {
		perror(err)
	}

	rows := [][]string{keyPairRow(path.String(), base)}
	for _, idx := range indexes {
		child, err := base.DeriveChild(idx)
		if err != nil {
			perror(fmt.Errorf("failed to derive key for index %d: %w", idx, err))
		}
		rows = append(rows, keyPairRow(append(path, idx).String(), child))
	}

	renderTable([]string{"Path", "Private key", "Public key", "Chain code"}, rows)
	base.SecretKey().Wipe()
}

func derivePublic(curve slip10.Curve, path slip10.Path, indexes []uint32) {
	raw, err := hex.DecodeString(flagPublic)
	if err != nil {
		perror(fmt.Errorf("invalid extended public key hex: %w", err))
	}
	parent, err := slip10.ParseExtendedPublicKey(curve, raw)
	if err != nil {
		perror(err)
	}

	base, err := parent.Derive(path)
	if err != nil {
		perror(err)
	}

	rows := [][]string{publicKeyRow(path.String(), base)}
	for _, idx := range indexes {
		child, err := base.DeriveChild(idx)
		if err != nil {
			perror(fmt.Errorf("failed to derive key for index %d: %w", idx, err))
		}
		rows = append(rows, publicKeyRow(append(path, idx).String(), child))
	}

	renderTable([]string{"Path", "Public key", "Chain code"}, rows)
}

func keyPairRow(path string, kp *slip10.ExtendedKeyPair) []string {
	chainCode := kp.ChainCode()
	return []string{
		path,
		hex.EncodeToString(kp.SecretKey().Scalar().Bytes()),
		hex.EncodeToString(kp.PublicKey().Point().Bytes()),
		hex.EncodeToString(chainCode[:]),
	}
}

func publicKeyRow(path string, k *slip10.ExtendedPublicKey) []string {
	chainCode := k.ChainCode()
	return []string{
		path,
		hex.EncodeToString(k.Point().Bytes()),
		hex.EncodeToString(chainCode[:]),
	}
}

func renderTable(header []string, rows [][]string) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.SetHeader(header)
	table.AppendBulk(rows)
	table.Render()
}

func doGenerate(cmd *cobra.Command, args []string) {
	if flagBytes < slip10.SeedMinSize || flagBytes > slip10.SeedMaxSize {
		perror(fmt.Errorf("seed size must be %d to %d bytes", slip10.SeedMinSize, slip10.SeedMaxSize))
	}

	seed := make([]byte, flagBytes)
	if _, err := rand.Read(seed); err != nil {
		perror(err)
	}

	fmt.Printf("%s\n", hex.EncodeToString(seed))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	deriveCmd.Flags().StringVar(&flagCurve, "curve", "secp256k1", "curve (secp256k1 or nist256p1)")
	deriveCmd.Flags().StringVar(&flagPath, "path", "m", "derivation path, e.g. m/44'/474'/0'")
	deriveCmd.Flags().StringVar(&flagSeed, "seed", "", "seed as hex (prompted interactively if omitted)")
	deriveCmd.Flags().StringVar(&flagPublic, "public", "", "derive from this hex extended public key instead of a seed")
	deriveCmd.Flags().StringVar(&flagIndexes, "indexes", "", "additional child indexes under the path, comma separated")
	generateCmd.Flags().IntVar(&flagBytes, "bytes", 32, "seed size in bytes")

	rootCmd.AddCommand(deriveCmd)
	rootCmd.AddCommand(generateCmd)
}
