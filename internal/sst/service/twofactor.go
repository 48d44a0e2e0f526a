package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"
	"net/url"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/sevenstents-cloud/sst-mvp/internal/sst/domain"
	"github.com/sevenstents-cloud/sst-mvp/internal/sst/store"
)

const (
	totpPeriod     = 30
	totpSecretSize = 20 // 160-bit secret
	qrCodeSize     = 256
)

var (
	ErrInvalidTOTPCode         = errors.New("invalid_totp_code")
	ErrTwoFactorNotEnabled     = errors.New("two_factor_not_enabled")
	ErrTwoFactorAlreadyEnabled = errors.New("two_factor_already_enabled")
)

type TwoFactorService struct {
	Store  store.Store
	Issuer string
}

// Enroll generates fresh provisioning material for an account. Nothing is
// persisted; the client holds the secret until Confirm proves the
// authenticator was set up with it.
func (s *TwoFactorService) Enroll(ctx context.Context, accountID string) (domain.TwoFactorEnrollment, error) {
	profile, err := s.Store.Profiles().GetProfile(ctx, accountID)
	if err != nil {
		return domain.TwoFactorEnrollment{}, fmt.Errorf("get profile: %w", err)
	}
	if profile.TwoFactorEnabled {
		return domain.TwoFactorEnrollment{}, ErrTwoFactorAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: profile.Email,
		Period:      totpPeriod,
		SecretSize:  totpSecretSize,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return domain.TwoFactorEnrollment{}, fmt.Errorf("generate totp key: %w", err)
	}

	uri := provisioningURI(s.Issuer, profile.Email, key.Secret())

	qr, err := renderQRCode(uri)
	if err != nil {
		return domain.TwoFactorEnrollment{}, fmt.Errorf("render qr code: %w", err)
	}

	return domain.TwoFactorEnrollment{
		Secret:  key.Secret(),
		URI:     uri,
		QRCode:  qr,
		Issuer:  s.Issuer,
		Account: profile.Email,
	}, nil
}

// Confirm validates a code against the not-yet-persisted secret and, only on
// success, writes enabled flag and secret in a single statement. A wrong
// code never mutates stored state; the client can retry with the same secret.
func (s *TwoFactorService) Confirm(ctx context.Context, accountID, secret, code string) error {
	profile, err := s.Store.Profiles().GetProfile(ctx, accountID)
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}
	if profile.TwoFactorEnabled {
		return ErrTwoFactorAlreadyEnabled
	}

	if !validateTOTP(code, secret, time.Now()) {
		return ErrInvalidTOTPCode
	}

	return s.Store.Profiles().SetTwoFactor(ctx, accountID, true, &secret)
}

// Disable clears the enabled flag and secret together. Outstanding refresh
// tokens keep working; only future sign-ins skip the second factor.
func (s *TwoFactorService) Disable(ctx context.Context, accountID string) error {
	profile, err := s.Store.Profiles().GetProfile(ctx, accountID)
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}
	if !profile.TwoFactorEnabled {
		return ErrTwoFactorNotEnabled
	}

	return s.Store.Profiles().SetTwoFactor(ctx, accountID, false, nil)
}

// provisioningURI builds the otpauth URI in the canonical
// issuer-prefixed-label form understood by authenticator apps.
func provisioningURI(issuer, account, secret string) string {
	return fmt.Sprintf("otpauth://totp/%s:%s?secret=%s&issuer=%s&algorithm=SHA1&digits=6&period=%d",
		url.PathEscape(issuer), url.PathEscape(account), secret, url.QueryEscape(issuer), totpPeriod)
}

// renderQRCode returns the URI as a PNG wrapped in a base64 data URL, ready
// for an <img> src.
func renderQRCode(uri string) (string, error) {
	key, err := otp.NewKeyFromURL(uri)
	if err != nil {
		return "", err
	}

	img, err := key.Image(qrCodeSize, qrCodeSize)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// validateTOTP accepts the previous, current and next 30s windows.
func validateTOTP(code, secret string, now time.Time) bool {
	ok, err := totp.ValidateCustom(code, secret, now, totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}
