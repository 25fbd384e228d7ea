package notify

// embeddedChimeWAV is a short 8-bit PCM chime, base64-encoded so the
// binary needs no asset files to produce a cue.
const embeddedChimeWAV = "UklGRnoGAABXQVZFZm10IBAAAAABAAEAQB8AAEAfAAABAAgAZGF0YQoGAACBhYqFbF1fdJivrJBhNjVgodDbq2EcBj+a2/LDciUFLIHO8tiJNwgZaLvt559NEAxQp+PruXMvBh5TltztwpRGCxNEiM/z1rGMFwMRb7X04beAHwALXqDh78upRwgMPoznv+mrfDMHFF+p6r0uMgI0fNDa4qQ6CyRwxO/NdicsJ3306t10IQk1hujMsVYYCS2J5dO3Wx4JL4Pq1cWUTBEUYK/t0b+cRBEcMpnizpd+UiYiJoTmrBkVHFCk4rJKGiMwf+atTB8jPZjcuFohIkCW6MVEliK9VJAAAHic3L+zoJmVlpeZm52TcFNOaJixq4BRR1yZt7KJbWD/UQAGIxIAAHiclKA7NamtuK6nnoASBhhImvNwFACIDHZoWl+Sl5aYm5EpAAgTQIrLtGsVE0B8ubgWGD2T1t10GRAZPpPhej4GH02k+IgVAA1Bo/mBIQURToD2kBoGD0h9/osbBgF7kQmDZE1Me2sgBweSPCcAAIeQfoI2Hj42FgCbpqIWAACLkoRzQS0WHzIsHRAAkaUgAFlcVmljPCcHAJalUQAUHiApMDIzJwMAjqaDAEsVAAKSrBE5luKxPRcJAJOhAABSTVBRRisAAJimFidMW/N5BwCaqB4AVVlHTkU4NgcAl6GK9ndQW11fYGJjZEIDAI60V0UikrKnHAkAlKVkRlFTVVfyVABqc1MAaW08AAACMDk8Pj9AQUINCAAAPUZKsn8TBgiR9YYVChCHznccBQA/S06enJgAAESR0mECAD5P+734vgBM9Uc/QE1vcHFyc3R1km0AADZnwXgSMEw6yrgWADFhyWEAADJFDcOqCQAxboLkuToMAC5grdq1CQAqWPrtuDoIAChU5s2gcBgMACNG9r0QAB1LjOC5OQcAHEOAyLs7BAAbPWed2cbJzM3Ov2UAABc2U1evYQAAFTJOTv3+WAAAABIs8d7g4eLj5OXmuE0AABAY7+usAAARFdI6IkBOjSUAAA8RzXRucHFyc3R1ttS7vb6/wmgAAPnvDA4PENEhISIkJSYJ/VEA//XzF/f6+/z9/v8A1HIdHH7/IiQlJicoKSor5R8A8RgXFBFykQwAAOgC/8ZZmA8A5djDr1+UEgDfz7N9pHcA28WlWa+ZANLR0ry1uJUV0MesJr3OuQB7maZy/d4A0LoaAMgB/7e7vL2+v8DBKaOlpqeoqaqrrK2utA4AuKoDALQA17m8vb6/wMHCw8SsEgCvGBYUEu/QAK2ur7CxsrO0tau3uLm6u7y9vr/AwcLDxK2/AKoYQwCnoKGio6SlpqezCgClpgCfmJmam5ydnp/zBgCcnQagAJSQkZKTlJWWl7WMmJmam5ydnp+gAJJ3ASKNjo+QkZKTlJWWl5hRyACSmeGa3pubQwBI5wCJmgCDfH1+f4CBgoOShYaHiImKi4yNjo+QkaEGAHyeAHZ3eHl6e3x9fn8/AHN1dgBtb3BxcnN0dZhnaGlqa2xtbm9wcXJzdd+ZAGcXpGFiY2RlZmdoaWprbHwGAGBFAFlLAFNUVVZXWFlaZVJTVFVWV1hZWltkAE1OT1BRUlNUVVZXWFlacOMATe4ARRkAPDc4OTo7PD0+TD9AQUJDREVGR0hJSktMTU19DAA8mgA2Jf8xMjM0NTY3ODk6Ozw9Pj9AQUJDREVGR0hJSks6TQAwMQApKissLS4vMDEyMzQ1Njc4OTpfkiWkKTcAISIjJCUmJygpKissLS4vMDEyMzQ1Ngw9HgAgXQAZGhscHR4fICEiIyQlJhYAnpoIAJeYmZqbnJ2en6ChoqOkpaanqKmqq6ytrq+wsbKztLW2t7i5uru8vb6/wMHCw8TFxsfIycrLzM3Oz9DR0tPU1dbX2Nna29zd3t/g4eLj5OXm5+jp6uvs7e7v8PHy8/T19vf4+fr7/P3+/wA="
