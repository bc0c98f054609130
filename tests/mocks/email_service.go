package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendEmailVerification(ctx context.Context, toEmail, username, verificationToken string) error {
	args := m.Called(ctx, toEmail, username, verificationToken)
	return args.Error(0)
}

func (m *EmailService) SendPasswordResetEmail(ctx context.Context, toEmail, username, resetToken string) error {
	args := m.Called(ctx, toEmail, username, resetToken)
	return args.Error(0)
}

func (m *EmailService) SendFightInvite(ctx context.Context, toEmail, creatorName, fightTitle string) error {
	args := m.Called(ctx, toEmail, creatorName, fightTitle)
	return args.Error(0)
}
