// Copyright (c) 2026 Sentra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"bytes"
	"fmt"
	"image/png"
	"net/url"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// # TOTP Parameters
//
// Standard RFC 6238 profile: SHA-1, 6 digits, 30-second time steps. Every
// mainstream authenticator app assumes exactly these values, so they are not
// configurable.
const (
	// totpPeriod is the length of a single time step in seconds.
	totpPeriod = 30

	// totpSkew is the number of adjacent time steps accepted on either side
	// of the current one, to absorb client clock drift.
	totpSkew = 1

	// totpSecretSize is the raw secret length in bytes (160 bits).
	totpSecretSize = 20
)

// GenerateTOTPSecret produces a fresh random base32-encoded enrollment secret.
//
// The secret is generated exactly once per user at registration and is the
// only input an authenticator app needs besides wall-clock time.
func GenerateTOTPSecret(issuer, account string) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: account,
		SecretSize:  totpSecretSize,
		Algorithm:   otp.AlgorithmSHA1,
		Digits:      otp.DigitsSix,
		Period:      totpPeriod,
	})
	if err != nil {
		return "", fmt.Errorf("sec: failed to generate TOTP secret: %w", err)
	}
	return key.Secret(), nil
}

// ProvisioningURI builds the deterministic otpauth:// enrollment string for
// the given secret and account metadata. It has no side effects.
func ProvisioningURI(username, secret, issuer string) string {
	return fmt.Sprintf("otpauth://totp/%s:%s?secret=%s&issuer=%s&algorithm=SHA1&digits=6&period=%d",
		url.PathEscape(issuer),
		url.PathEscape(username),
		url.QueryEscape(secret),
		url.QueryEscape(issuer),
		totpPeriod,
	)
}

// VerifyTOTP reports whether the submitted code matches the expected value
// for the secret at the current time step, allowing ±1 step of clock skew.
//
// The underlying comparison is constant-time; a wrong code returns false,
// never an error.
func VerifyTOTP(secret, submittedCode string) bool {
	if secret == "" || submittedCode == "" {
		return false
	}

	valid, err := totp.ValidateCustom(submittedCode, secret, time.Now().UTC(), totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      totpSkew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return false
	}
	return valid
}

// RenderQR encodes a provisioning URI into a scannable PNG image.
//
// # Parameters
//   - uri: An otpauth:// provisioning URI (see [ProvisioningURI]).
//   - size: Output image width and height in pixels.
func RenderQR(uri string, size int) ([]byte, error) {
	key, err := otp.NewKeyFromURL(uri)
	if err != nil {
		return nil, fmt.Errorf("sec: invalid provisioning URI: %w", err)
	}

	image, err := key.Image(size, size)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to render QR image: %w", err)
	}

	var buffer bytes.Buffer
	if err := png.Encode(&buffer, image); err != nil {
		return nil, fmt.Errorf("sec: failed to encode QR PNG: %w", err)
	}

	return buffer.Bytes(), nil
}
