package custody

import (
	"context"
	"fmt"

	"github.com/AlexZinkM/multichain-wallet/internal/client"
	"github.com/AlexZinkM/multichain-wallet/internal/common"
	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"go.uber.org/zap"
)

// GetBalance gets the wallet's native balance on one network.
// The USD value is best effort: a rate failure leaves it empty.
// password must be []byte for security (caller should zero it after use)
func (s *Service) GetBalance(ctx context.Context, id string, password []byte, networkID string) (*model.BalanceResponse, error) {
	n, err := s.networks.Resolve(networkID)
	if err != nil {
		return nil, err
	}

	record, err := s.store.Retrieve(ctx, id, password)
	if err != nil {
		return nil, err
	}
	defer record.Wipe()

	chain, err := s.networks.ChainClient(ctx, n.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", n.ID, err)
	}

	// Solana uses its own key, derived from the same phrase
	address, err := chain.AccountAddress(client.Credentials{
		Address:    record.Address,
		PrivateKey: record.PrivateKey,
		Mnemonic:   record.Mnemonic,
	})
	if err != nil {
		return nil, err
	}

	balance, err := chain.Balance(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	resp := &model.BalanceResponse{
		Address: address,
		Network: n.ID,
		Symbol:  n.Symbol,
		Balance: common.FromBaseUnits(balance, n.Decimals),
	}
	if resp.Display, err = s.networks.FormatAmount(n.ID, balance); err != nil {
		return nil, err
	}
	if resp.Explorer, err = s.networks.AddressURL(n.ID, address); err != nil {
		return nil, err
	}

	if s.rates == nil {
		return resp, nil
	}
	rate, err := s.rates.GetUSDRate(ctx, n.Symbol)
	if err != nil {
		s.logger.Warn("Failed to get rate", zap.String("symbol", n.Symbol), zap.Error(err))
		return resp, nil
	}
	usd, err := common.MultiplyRate(resp.Balance, rate)
	if err != nil {
		s.logger.Warn("Failed to price balance", zap.String("rate", rate), zap.Error(err))
		return resp, nil
	}
	resp.USDRate = rate
	resp.USDAmount = usd

	return resp, nil
}

// EstimateFee returns the current fee for a native transfer on networkID
func (s *Service) EstimateFee(ctx context.Context, networkID string) (*model.FeeResponse, error) {
	n, err := s.networks.Resolve(networkID)
	if err != nil {
		return nil, err
	}

	chain, err := s.networks.ChainClient(ctx, n.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", n.ID, err)
	}

	fee, err := chain.EstimateFee(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate fee: %w", err)
	}

	return &model.FeeResponse{
		Network:     n.ID,
		Fee:         common.FromBaseUnits(fee.Total(), n.Decimals),
		MaxFee:      fee.MaxFee.String(),
		PriorityFee: fee.PriorityFee.String(),
		GasLimit:    fee.GasLimit,
	}, nil
}
