package ofx

import "text/template"

// OFX 1.x SGML fragments. The message-set envelope differs between
// bank and credit card statements; header and footer must agree on it.

const headerTemplate = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:UTF-8
CHARSET:NONE
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>{{.DtNow}}
<LANGUAGE>{{.Lang}}
<FI>
<ORG>{{.FiOrg}}
<FID>{{.FiID}}
</FI>
</SONRS>
</SIGNONMSGSRSV1>
<{{.MsgSet}}MSGSRSV1>
<{{.TrnPrefix}}STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<{{.TrnPrefix}}STMTRS>
<CURDEF>{{.Cur}}
<{{.Abbrev}}ACCTFROM>
{{- if .CreditCard}}
<ACCTID>{{.AcctID}}
{{- else}}
<BANKID>{{.BankID}}
{{- if .BranchID}}
<BRANCHID>{{.BranchID}}
{{- end}}
<ACCTID>{{.AcctID}}
<ACCTTYPE>{{.AcctType}}
{{- end}}
</{{.Abbrev}}ACCTFROM>
<BANKTRANLIST>
<DTSTART>{{.DtStart}}
<DTEND>{{.DtEnd}}`

const transactionTemplate = `<STMTTRN>
<TRNTYPE>{{.TrnType}}
<DTPOSTED>{{.DtPosted}}
<TRNAMT>{{.Amount}}
<FITID>{{.FitID}}
<MEMO>{{.Memo}}
</STMTTRN>`

const footerTemplate = `</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>{{.Balance}}
<DTASOF>{{.DtEnd}}
</LEDGERBAL>
</{{.TrnPrefix}}STMTRS>
</{{.TrnPrefix}}STMTTRNRS>
</{{.MsgSet}}MSGSRSV1>
</OFX>`

var (
	headerTmpl      = template.Must(template.New("header").Parse(headerTemplate))
	transactionTmpl = template.Must(template.New("transaction").Parse(transactionTemplate))
	footerTmpl      = template.Must(template.New("footer").Parse(footerTemplate))
)
