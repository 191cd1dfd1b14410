package payment

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// CreditCardInput 提交给支付网关之前的卡信息，仅在内存中校验，不落库
type CreditCardInput struct {
	Number      string `json:"number" validate:"required,luhn"`
	HolderName  string `json:"holder_name" validate:"required,min=2,max=100"`
	ExpiryMonth string `json:"expiry_month" validate:"required"`
	ExpiryYear  string `json:"expiry_year" validate:"required"`
	CCV         string `json:"ccv" validate:"required,cvv"`
	HolderCPF   string `json:"holder_cpf" validate:"omitempty,cpf"`
}

// 字段名与 JSON 字段一致，便于前端定位
const (
	FieldNumber     = "number"
	FieldHolderName = "holder_name"
	FieldExpiry     = "expiry"
	FieldCCV        = "ccv"
	FieldHolderCPF  = "holder_cpf"
)

// CardCheck 卡信息逐项校验结果
type CardCheck struct {
	Valid   bool            `json:"valid"`
	Fields  map[string]bool `json:"fields"`
	Invalid []string        `json:"invalid,omitempty"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator 注册了 luhn / cpf / cvv 标签的校验器
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		if err := RegisterValidations(validate); err != nil {
			log.Printf("Failed to register card validations: %v", err)
		}
	})
	return validate
}

// RegisterValidations 把卡号、CPF、CVV 校验注册到 v 上
func RegisterValidations(v *validator.Validate) error {
	rules := map[string]func(string) bool{
		"luhn": LuhnValid,
		"cpf":  NationalIDValid,
		"cvv":  CVVValid,
	}
	for tag, valid := range rules {
		valid := valid
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return valid(fl.Field().String())
		}); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}

var jsonFieldNames = map[string]string{
	"Number":      FieldNumber,
	"HolderName":  FieldHolderName,
	"ExpiryMonth": FieldExpiry,
	"ExpiryYear":  FieldExpiry,
	"CCV":         FieldCCV,
	"HolderCPF":   FieldHolderCPF,
}

// ValidateCard 逐项校验卡信息，全部通过才算有效；有效期按 now 判断
func ValidateCard(in CreditCardInput, now time.Time) CardCheck {
	fields := map[string]bool{
		FieldNumber:     true,
		FieldHolderName: true,
		FieldExpiry:     true,
		FieldCCV:        true,
	}
	if in.HolderCPF != "" {
		fields[FieldHolderCPF] = true
	}

	if err := Validator().Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if name, ok := jsonFieldNames[fe.StructField()]; ok {
					fields[name] = false
				}
			}
		} else {
			for name := range fields {
				fields[name] = false
			}
		}
	}

	if !ExpiryValidAt(parseNumber(in.ExpiryMonth), parseNumber(in.ExpiryYear), now) {
		fields[FieldExpiry] = false
	}

	check := CardCheck{Valid: true, Fields: fields}
	for _, name := range []string{FieldNumber, FieldHolderName, FieldExpiry, FieldCCV, FieldHolderCPF} {
		if ok, present := fields[name]; present && !ok {
			check.Valid = false
			check.Invalid = append(check.Invalid, name)
		}
	}
	return check
}
